package jwt

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"omnily-go-admin/redis"
)

var (
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenInvalid     = errors.New("token is invalid")
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrTokenNotValidYet = errors.New("token not active yet")
	ErrTokenInBlacklist = errors.New("token has been revoked")
)

type JWTConfig struct {
	SigningKey      string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Issuer          string
}

// SecureCustomClaims carries a JWT ID so tokens can be revoked individually.
type SecureCustomClaims struct {
	UID            int    `json:"uid"`
	RID            int    `json:"rid"`
	TYPE           int    `json:"type"`
	OrganizationID string `json:"organization_id,omitempty"`
	JTI            string `json:"jti"`
	jwt.RegisteredClaims
}

func LoadJWTConfig() *JWTConfig {
	signingKey := os.Getenv("JWT_SIGNING_KEY")
	if signingKey == "" {
		log.Fatal("JWT_SIGNING_KEY environment variable is required")
	}

	if len(signingKey) < 32 {
		log.Fatal("JWT_SIGNING_KEY must be at least 32 characters long")
	}

	return &JWTConfig{
		SigningKey:      signingKey,
		AccessTokenTTL:  time.Hour * 24,
		RefreshTokenTTL: time.Hour * 24 * 7,
		Issuer:          "omnily-go-admin",
	}
}

// GenerateSecureKey creates a random 256-bit signing key, hex encoded.
func GenerateSecureKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// SecureJWTManager issues revocable tokens backed by a Redis blacklist.
type SecureJWTManager struct {
	config    *JWTConfig
	blacklist *TokenBlacklist
}

func NewSecureJWTManager() *SecureJWTManager {
	config := LoadJWTConfig()
	blacklist := NewTokenBlacklist()

	return &SecureJWTManager{
		config:    config,
		blacklist: blacklist,
	}
}

// GenerateToken issues a token for the admin, bound to their organization.
func (sjm *SecureJWTManager) GenerateToken(uid, rid, userType int, organizationID string) (string, error) {
	jti := uuid.New().String()

	claims := SecureCustomClaims{
		UID:            uid,
		RID:            rid,
		TYPE:           userType,
		OrganizationID: organizationID,
		JTI:            jti,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sjm.config.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    sjm.config.Issuer,
			Subject:   fmt.Sprintf("user:%d", uid),
			ID:        jti,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(sjm.config.SigningKey))
}

// ValidateToken parses the token and rejects blacklisted IDs.
func (sjm *SecureJWTManager) ValidateToken(tokenString string) (*SecureCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SecureCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(sjm.config.SigningKey), nil
	})

	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok {
			if ve.Errors&jwt.ValidationErrorMalformed != 0 {
				return nil, ErrTokenMalformed
			} else if ve.Errors&jwt.ValidationErrorExpired != 0 {
				return nil, ErrTokenExpired
			} else if ve.Errors&jwt.ValidationErrorNotValidYet != 0 {
				return nil, ErrTokenNotValidYet
			} else {
				return nil, ErrTokenInvalid
			}
		}
		return nil, err
	}

	if claims, ok := token.Claims.(*SecureCustomClaims); ok && token.Valid {
		isBlacklisted, err := sjm.blacklist.IsBlacklisted(claims.JTI)
		if err != nil {
			return nil, fmt.Errorf("blacklist check failed: %v", err)
		}

		if isBlacklisted {
			return nil, ErrTokenInBlacklist
		}

		return claims, nil
	}

	return nil, errors.New("failed to parse token")
}

// RevokeToken blacklists the token until its natural expiry.
func (sjm *SecureJWTManager) RevokeToken(tokenString string) error {
	claims, err := sjm.ValidateToken(tokenString)
	if err != nil {
		return err
	}

	return sjm.blacklist.AddToBlacklist(claims.JTI, claims.ExpiresAt.Time)
}

// TokenBlacklist stores revoked JWT IDs in Redis.
type TokenBlacklist struct {
}

const (
	blacklistPrefix = "jwt_blacklist:"
)

func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{}
}

// AddToBlacklist keeps the entry only until the token would expire anyway.
func (tb *TokenBlacklist) AddToBlacklist(tokenID string, expiry time.Time) error {
	key := blacklistPrefix + tokenID
	duration := time.Until(expiry)

	if duration <= 0 {
		return nil
	}

	redisClient := redis.GetClient()
	if redisClient == nil {
		return errors.New("redis client not initialized")
	}

	return redisClient.Set(context.Background(), key, "1", duration).Err()
}

func (tb *TokenBlacklist) IsBlacklisted(tokenID string) (bool, error) {
	key := blacklistPrefix + tokenID
	redisClient := redis.GetClient()
	if redisClient == nil {
		return false, errors.New("redis client not initialized")
	}

	result := redisClient.Exists(context.Background(), key)
	return result.Val() > 0, result.Err()
}
