package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinvetia/services/fault"
	"clinvetia/utils"
)

// respondError maps a service error to its transport shape. Coded errors are
// surfaced with their message and safe meta; everything else (store or
// upstream internals) becomes a generic server error.
func respondError(c *gin.Context, err error) {
	fe := fault.As(err)
	if fe == nil {
		utils.GetLogger().Error("unhandled service error", zap.Error(err))
		utils.JSONError(c, fault.HTTPStatus(fault.Server), "Internal Server Error", "")
		return
	}

	if fe.Code == fault.Server || fe.Code == fault.Upstream {
		utils.GetLogger().Error("service failure", zap.String("code", string(fe.Code)), zap.Error(err))
	}

	body := gin.H{"error": fe.Message, "code": string(fe.Code)}
	for k, v := range fe.Meta {
		body[k] = v
	}
	c.JSON(fault.HTTPStatus(fe.Code), body)
}
