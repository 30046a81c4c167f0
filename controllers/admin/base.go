package admin

import (
	"github.com/gin-gonic/gin"

	"omnily-go-admin/pkg/response"
)

// Resp is the shared response helper for the admin controllers.
var Resp = &rps{}

type rps struct{}

func (rps) Succ(c *gin.Context, data interface{}) {
	response.Success(c, data)
}

func (rps) Err(c *gin.Context, errCode int, message string) {
	response.Error(c, errCode, message)
}
