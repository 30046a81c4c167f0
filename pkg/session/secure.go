package session

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

// Init installs the session middleware backing the captcha flow. Sessions
// live in Redis when an address is given, otherwise in an encrypted cookie.
func Init(r *gin.Engine, redisAddr, redisPassword string) {
	authKey := make([]byte, 32)
	if _, err := rand.Read(authKey); err != nil {
		log.Fatal("failed to generate session auth key:", err)
	}

	opts := sessions.Options{
		MaxAge:   3600,
		Secure:   gin.Mode() == gin.ReleaseMode,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	}

	if redisAddr != "" {
		store, err := redis.NewStore(10, "tcp", redisAddr, redisPassword, []byte(hex.EncodeToString(authKey)))
		if err == nil {
			store.Options(opts)
			r.Use(sessions.Sessions("mysession", store))
			return
		}
		log.Printf("redis session store unavailable, falling back to cookies: %v", err)
	}

	cookieStore := cookie.NewStore(authKey)
	cookieStore.Options(opts)
	r.Use(sessions.Sessions("mysession", cookieStore))
}

// CaptchaOptions tightens the session lifetime for captcha issuance.
// A challenge is only valid for five minutes.
func CaptchaOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		session.Options(sessions.Options{
			MaxAge:   300,
			Secure:   gin.Mode() == gin.ReleaseMode,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
		c.Next()
	}
}
