package api

import (
	"crypto/md5"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"omnily-go-admin/inout"
	"omnily-go-admin/model"
	"omnily-go-admin/pkg/jwt"
	"omnily-go-admin/pkg/monitoring"
	"omnily-go-admin/pkg/response"
	"omnily-go-admin/pkg/security"
	"omnily-go-admin/redis"
	"omnily-go-admin/utils"
)

// Auth serves captcha, login and password endpoints for back-office admins.
type Auth struct {
	db *gorm.DB
}

func NewAuth(db *gorm.DB) *Auth {
	return &Auth{db: db}
}

// Captcha renders an SVG captcha and stores the expected code in the session.
func (a *Auth) Captcha(c *gin.Context) {
	svg, code := utils.GenerateSVG(80, 40)
	session := sessions.Default(c)
	session.Set("captch", code)
	session.Save()
	c.Header("Content-Type", "image/svg+xml; charset=utf-8")
	c.Data(http.StatusOK, "image/svg+xml", svg)
}

// Login checks the captcha and credentials, then issues an organization-bound
// token.
func (a *Auth) Login(c *gin.Context) {
	var params inout.LoginReq
	if err := c.Bind(&params); err != nil {
		response.Error(c, response.INVALID_PARAMS, err.Error())
		return
	}

	if err := security.ValidateInput(params.Username); err != nil {
		response.Error(c, response.INVALID_PARAMS, "username contains invalid characters")
		return
	}

	session := sessions.Default(c)
	if params.Captcha != session.Get("captch") {
		response.Error(c, response.INVALID_PARAMS, "incorrect captcha")
		return
	}

	var info model.User
	a.db.Model(model.User{}).Where("username = ?", params.Username).Find(&info)
	if info.ID == 0 {
		response.Error(c, response.AUTH_ERROR, "incorrect username or password")
		return
	}

	var passwordValid bool
	if info.PasswordBcrypt != "" {
		passwordValid = security.CheckPasswordHash(params.Password, info.PasswordBcrypt)
	} else {
		// Legacy MD5 passwords, upgraded to bcrypt on first successful login.
		md5Hash := fmt.Sprintf("%x", md5.Sum([]byte(params.Password)))
		passwordValid = (info.Password == md5Hash)

		if passwordValid {
			newHash, err := security.HashPassword(params.Password)
			if err == nil {
				a.db.Model(&info).Update("password_bcrypt", newHash)
			}
		}
	}

	if !passwordValid {
		response.Error(c, response.AUTH_ERROR, "incorrect username or password")
		return
	}

	jwtManager := jwt.NewSecureJWTManager()
	token, err := jwtManager.GenerateToken(info.ID, 0, 0, info.OrganizationId)
	if err != nil {
		response.Error(c, response.INTERNAL_ERROR, "failed to generate token")
		return
	}

	// Keep the active session in Redis so a re-login supersedes the
	// previous one and lookups skip the database.
	userID := fmt.Sprintf("%d", info.ID)
	if err := redis.StoreToken(userID, token, 24*time.Hour); err != nil {
		log.Printf("failed to store session token: %v", err)
	}
	if err := redis.StoreUserInfo(userID, map[string]interface{}{
		"id":             userID,
		"username":       info.Username,
		"organizationId": info.OrganizationId,
	}, 24*time.Hour); err != nil {
		log.Printf("failed to store session info: %v", err)
	}

	monitoring.RecordUserLogin()

	response.Success(c, inout.LoginRes{
		AccessToken: token,
	})
}

// Me returns the authenticated admin's profile, served from the session
// cache when present.
func (a *Auth) Me(c *gin.Context) {
	uid := c.GetInt("uid")
	userID := fmt.Sprintf("%d", uid)

	if cached, err := redis.GetUserInfo(userID); err == nil {
		response.Success(c, cached)
		return
	}

	var info model.User
	a.db.Model(model.User{}).Where("id = ?", uid).Find(&info)
	if info.ID == 0 {
		response.Error(c, response.NOT_FOUND, "account not found")
		return
	}
	response.Success(c, map[string]string{
		"id":             userID,
		"username":       info.Username,
		"organizationId": info.OrganizationId,
	})
}

// ChangePassword verifies the current password before setting the new hash.
func (a *Auth) ChangePassword(c *gin.Context) {
	var params inout.ChangePasswordReq
	if err := c.Bind(&params); err != nil {
		response.Error(c, response.INVALID_PARAMS, err.Error())
		return
	}

	uid := c.GetInt("uid")
	var info model.User
	a.db.Model(model.User{}).Where("id = ?", uid).Find(&info)
	if info.ID == 0 {
		response.Error(c, response.NOT_FOUND, "account not found")
		return
	}

	valid := false
	if info.PasswordBcrypt != "" {
		valid = security.CheckPasswordHash(params.OldPassword, info.PasswordBcrypt)
	} else {
		valid = info.Password == fmt.Sprintf("%x", md5.Sum([]byte(params.OldPassword)))
	}
	if !valid {
		response.Error(c, response.AUTH_ERROR, "incorrect current password")
		return
	}

	newHash, err := security.HashPassword(params.NewPassword)
	if err != nil {
		response.Error(c, response.INVALID_PARAMS, err.Error())
		return
	}
	if err := a.db.Model(model.User{}).Where("id = ?", uid).
		Update("password_bcrypt", newHash).Error; err != nil {
		response.Error(c, response.INTERNAL_ERROR, "failed to update password")
		return
	}

	response.Success(c, true)
}

// Logout revokes the presented token.
func (a *Auth) Logout(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if len(token) > 7 && token[:7] == "Bearer " {
		token = token[7:]
	}
	if token != "" {
		jwtManager := jwt.NewSecureJWTManager()
		if err := jwtManager.RevokeToken(token); err != nil {
			response.Error(c, response.AUTH_ERROR, "failed to revoke token")
			return
		}
	}

	if uid := c.GetInt("uid"); uid != 0 {
		userID := fmt.Sprintf("%d", uid)
		if err := redis.DeleteToken(userID); err != nil {
			log.Printf("failed to delete session token: %v", err)
		}
		if err := redis.DeleteUserInfo(userID); err != nil {
			log.Printf("failed to delete session info: %v", err)
		}
	}
	response.Success(c, true)
}
