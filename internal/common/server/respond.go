package server

import (
	"strconv"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/RentalDrive/RentalDrive/internal/common/logger"
	"github.com/gin-gonic/gin"
)

// Response 统一响应包裹：{ message, data | error }。
type Response struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK 成功响应。
func OK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Message: message, Data: data})
}

// Fail 根据错误类别映射 HTTP 状态码。
// 内部错误不向客户端透出细节，只记日志。
func Fail(c *gin.Context, log logger.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if apperr.KindOf(err) == apperr.KindInternal {
		if log != nil {
			log.Errorf("request failed: method=%s path=%s err=%v", c.Request.Method, c.FullPath(), err)
		}
		c.JSON(status, Response{Message: "Server error"})
		return
	}
	c.JSON(status, Response{Message: err.Error()})
}

// Pagination 解析 page/page_size 查询参数，返回 offset 与 limit。
func Pagination(c *gin.Context) (offset, limit int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 200 {
		size = 20
	}
	return (page - 1) * size, size
}
