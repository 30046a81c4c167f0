package config

import (
	"os"
	"strings"
)

// CorsSettings holds the CORS policy applied to the admin API.
type CorsSettings struct {
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	ExposedHeaders   []string `json:"exposed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	MaxAge           int      `json:"max_age"`
}

// GetCorsConfig builds the CORS policy from the ALLOWED_ORIGINS environment
// variable, falling back to the back-office defaults.
func GetCorsConfig() CorsSettings {
	var allowedOrigins []string

	if envOrigins := os.Getenv("ALLOWED_ORIGINS"); envOrigins != "" {
		allowedOrigins = strings.Split(envOrigins, ",")
		for i, origin := range allowedOrigins {
			allowedOrigins[i] = strings.TrimSpace(origin)
		}
	} else {
		allowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8080",
			"https://localhost:3000",
			"https://localhost:5173",
			"https://localhost:8080",
		}

		// Development allows everything.
		if os.Getenv("GIN_MODE") != "release" {
			allowedOrigins = append(allowedOrigins, "*")
		}
	}

	return CorsSettings{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS", "HEAD",
		},
		AllowedHeaders: []string{
			"Origin",
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"X-CSRF-Token",
			"Authorization",
			"X-Request-ID",
			"Accept",
			"Cache-Control",
			"X-Requested-With",
			"User-Agent",
			"X-Real-IP",
			"X-Forwarded-For",
		},
		ExposedHeaders: []string{
			"Content-Length",
			"X-Request-ID",
			"X-Total-Count",
			"X-Page-Count",
		},
		AllowCredentials: true,
		MaxAge:           86400,
	}
}
