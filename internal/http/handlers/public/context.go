package public

import (
	"strings"

	"github.com/autoparts-enquiry/internal/constants"
	handlershared "github.com/autoparts-enquiry/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCartSessionLength = 64

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// resolveCartSession 读取询价车会话标识，缺失或非法时生成新的会话并回写响应头
func resolveCartSession(c *gin.Context) string {
	session := strings.TrimSpace(c.GetHeader(constants.CartSessionHeader))
	if session == "" || len(session) > maxCartSessionLength || strings.ContainsAny(session, ": \t") {
		session = uuid.NewString()
	}
	c.Header(constants.CartSessionHeader, session)
	return session
}
