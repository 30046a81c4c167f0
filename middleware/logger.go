package middleware

import (
	"bytes"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupLogFile opens (creating if needed) the daily log file under logDir.
func SetupLogFile(logDir string) *os.File {
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}

	logFile := filepath.Join(logDir, time.Now().Format("2006-01-02")+".log")
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	return file
}

// RequestLogger writes one line per request with method, path, client IP,
// query, body and latency.
func RequestLogger(logDir string) gin.HandlerFunc {
	logFile := SetupLogFile(logDir)
	logger := log.New(logFile, "", log.LstdFlags)

	return func(c *gin.Context) {
		start := time.Now()

		bodyBytes, _ := ioutil.ReadAll(c.Request.Body)
		c.Request.Body = ioutil.NopCloser(bytes.NewBuffer(bodyBytes))

		c.Next()

		latency := time.Since(start)

		method := c.Request.Method
		path := c.Request.URL.Path
		params := c.Request.URL.RawQuery
		clientIP := c.ClientIP()
		requestBody := string(bodyBytes)

		logger.Printf("%s %s %s %s %s %s", method, path, clientIP, params, requestBody, latency)
	}
}
