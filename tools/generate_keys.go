package main

import (
	"fmt"
	"log"

	"omnily-go-admin/pkg/jwt"
)

func main() {
	fmt.Println("=== Omnily Go Admin key generator ===")
	fmt.Println()

	jwtKey, err := jwt.GenerateSecureKey()
	if err != nil {
		log.Fatal("failed to generate JWT key:", err)
	}

	sessionKey, err := jwt.GenerateSecureKey()
	if err != nil {
		log.Fatal("failed to generate session key:", err)
	}

	encryptionKey, err := jwt.GenerateSecureKey()
	if err != nil {
		log.Fatal("failed to generate encryption key:", err)
	}

	fmt.Println("Add the following to your .env file:")
	fmt.Println()
	fmt.Printf("JWT_SIGNING_KEY=%s\n", jwtKey)
	fmt.Printf("SESSION_SECRET=%s\n", sessionKey)
	fmt.Printf("ENCRYPTION_KEY=%s\n", encryptionKey)
	fmt.Println()
	fmt.Println("Keep these out of version control and use different keys per environment.")
}
