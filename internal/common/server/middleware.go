package server

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/RentalDrive/RentalDrive/internal/common/auth"
	"github.com/RentalDrive/RentalDrive/internal/common/config"
	"github.com/RentalDrive/RentalDrive/internal/common/logger"
	"github.com/RentalDrive/RentalDrive/internal/common/middleware"
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

const authInfoKey = "auth_info"

// AuthInfo 从 JWT 中解析出的最小用户信息（放入请求上下文，供业务侧使用）。
type AuthInfo struct {
	Subject string // 用户 ID
	Email   string
	Role    string // admin / secretary / client
	Token   string // 原始 token（登出时写入黑名单）
}

// AuthFromContext 从请求上下文中取出鉴权信息。
func AuthFromContext(c *gin.Context) (AuthInfo, bool) {
	v, ok := c.Get(authInfoKey)
	if !ok {
		return AuthInfo{}, false
	}
	ai, ok := v.(AuthInfo)
	return ai, ok
}

// RecoveryMiddleware 防止 panic 直接把进程打崩，并记录栈信息。
func RecoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				if log != nil {
					log.Errorf("panic in http handler method=%s path=%s err=%v stack=%s",
						c.Request.Method, c.Request.URL.Path, r, string(debug.Stack()))
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, Response{Message: "Server error"})
			}
		}()
		c.Next()
	}
}

// AccessLogMiddleware 记录每个 HTTP 请求的耗时/状态码。
func AccessLogMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		cost := time.Since(start)

		if log == nil {
			return
		}
		fields := map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
			"cost":   cost.String(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.WithFields(fields).Warn("http request failed")
		} else {
			log.WithFields(fields).Info("http request ok")
		}
	}
}

// TracingMiddleware 基于 OpenTracing 的最小 server 中间件：
// - 从请求头提取上游 span context（uber-trace-id 等，取决于注入格式）
// - 创建 server span 并写入 request context，业务侧可 StartSpanFromContext
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tracer := opentracing.GlobalTracer()

		var parent opentracing.SpanContext
		if sc, err := tracer.Extract(opentracing.HTTPHeaders,
			opentracing.HTTPHeadersCarrier(c.Request.Header)); err == nil {
			parent = sc
		}

		operation := c.Request.Method + " " + c.FullPath()
		var span opentracing.Span
		if parent != nil {
			span = tracer.StartSpan(operation, ext.RPCServerOption(parent))
		} else {
			span = tracer.StartSpan(operation)
		}
		defer span.Finish()

		ext.SpanKindRPCServer.Set(span)
		ext.Component.Set(span, "http")
		ext.HTTPMethod.Set(span, c.Request.Method)
		ext.HTTPUrl.Set(span, c.Request.URL.Path)
		if serviceName != "" {
			span.SetTag("service", serviceName)
		}

		c.Request = c.Request.WithContext(opentracing.ContextWithSpan(c.Request.Context(), span))
		c.Next()

		ext.HTTPStatusCode.Set(span, uint16(c.Writer.Status()))
	}
}

// RateLimitMiddleware 入口限流；超限返回 429。
func RateLimitMiddleware(limiter middleware.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, Response{Message: "Too many requests"})
			return
		}
		c.Next()
	}
}

// TokenRevoker 登出黑名单查询（由 session.Store 实现）。
type TokenRevoker interface {
	IsRevoked(ctx context.Context, token string) bool
}

// AuthMiddleware JWT 鉴权：
// - 优先读 http-only cookie，其次 `Authorization: Bearer <token>`
// - 校验 HS256 签名与 exp/nbf/iss/aud
// - 查询登出黑名单（尽力而为，Redis 不可用时放行）
// - 校验失败清除 cookie 并返回 401
func AuthMiddleware(cfg config.AuthConfig, revoker TokenRevoker, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		token := tokenFromRequest(c, cfg.CookieName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Message: "Authentication required"})
			return
		}

		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			clearAuthCookie(c, cfg)
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Message: "Invalid or expired token"})
			return
		}

		if revoker != nil && revoker.IsRevoked(c.Request.Context(), token) {
			clearAuthCookie(c, cfg)
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Message: "Invalid or expired token"})
			return
		}

		c.Set(authInfoKey, AuthInfo{
			Subject: claims.Subject,
			Email:   claims.Email,
			Role:    claims.Role,
			Token:   token,
		})
		c.Next()
	}
}

// RequireRoles 角色校验；未配置角色要求时放行（只鉴权，不限权）。
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(roles) == 0 {
			c.Next()
			return
		}
		ai, ok := AuthFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Message: "Authentication required"})
			return
		}
		got := strings.ToLower(strings.TrimSpace(ai.Role))
		for _, r := range roles {
			if got == strings.ToLower(strings.TrimSpace(r)) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, Response{Message: "Forbidden - Insufficient permissions"})
	}
}

// SetAuthCookie 登录成功后设置 http-only cookie。
func SetAuthCookie(c *gin.Context, cfg config.AuthConfig, token string, ttl time.Duration) {
	c.SetCookie(cookieName(cfg), token, int(ttl.Seconds()), "/", "", cfg.CookieSecure, true)
}

func clearAuthCookie(c *gin.Context, cfg config.AuthConfig) {
	c.SetCookie(cookieName(cfg), "", -1, "/", "", cfg.CookieSecure, true)
}

// ClearAuthCookie 登出时清除 cookie。
func ClearAuthCookie(c *gin.Context, cfg config.AuthConfig) {
	clearAuthCookie(c, cfg)
}

func cookieName(cfg config.AuthConfig) string {
	if cfg.CookieName == "" {
		return "token"
	}
	return cfg.CookieName
}

func tokenFromRequest(c *gin.Context, cookie string) string {
	if cookie == "" {
		cookie = "token"
	}
	if v, err := c.Cookie(cookie); err == nil && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}

	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[len("bearer "):])
	}
	return raw
}
