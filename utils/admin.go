package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// GetOrgID resolves the organization the authenticated admin operates on.
// The JWT middleware stores the session payload under "userInfo".
func GetOrgID(c *gin.Context) (string, error) {
	userInfo, exists := c.Get("userInfo")
	if !exists {
		return "", fmt.Errorf("missing user info")
	}

	userInfoMap, ok := userInfo.(map[string]string)
	if !ok {
		return "", fmt.Errorf("malformed user info")
	}

	orgID, ok := userInfoMap["organizationId"]
	if !ok || orgID == "" {
		return "", fmt.Errorf("no organization bound to session")
	}

	return orgID, nil
}
