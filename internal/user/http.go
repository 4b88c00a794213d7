package user

import (
	"context"
	"net/http"
	"time"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/RentalDrive/RentalDrive/internal/common/auth"
	"github.com/RentalDrive/RentalDrive/internal/common/config"
	"github.com/RentalDrive/RentalDrive/internal/common/logger"
	"github.com/RentalDrive/RentalDrive/internal/common/middleware"
	"github.com/RentalDrive/RentalDrive/internal/common/server"
	"github.com/gin-gonic/gin"
)

// TokenRevoker 登出时吊销 token（session.Store 实现）。
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

type Handler struct {
	svc      *Service
	sessions TokenRevoker
	authCfg  config.AuthConfig
	log      logger.Logger
}

func NewHandler(svc *Service, sessions TokenRevoker, authCfg config.AuthConfig, log logger.Logger) *Handler {
	return &Handler{svc: svc, sessions: sessions, authCfg: authCfg, log: log}
}

// Register 挂载认证与用户路由。注册与登录公开；用户管理仅限 admin。
// 登录端点单独叠加滑动窗口限流防刷。
func (h *Handler) Register(api *gin.RouterGroup, authn, adminOnly gin.HandlerFunc) {
	loginLimit := server.RateLimitMiddleware(middleware.NewSlidingWindow(time.Minute, 30))

	a := api.Group("/auth")
	a.POST("/login", loginLimit, h.login)
	a.POST("/logout", authn, h.logout)

	g := api.Group("/users")
	g.POST("", h.register)
	g.GET("/me", authn, h.me)
	g.GET("", authn, adminOnly, h.list)
	g.GET("/:id", authn, adminOnly, h.getByID)
	g.PUT("/:id", authn, adminOnly, h.update)
	g.DELETE("/:id", authn, adminOnly, h.delete)
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.Fail(c, h.log, apperr.Wrap(apperr.KindValidation, "name, email and password are required", err))
		return
	}

	// 公开注册只产出 client 账号；角色提升走管理员的 PUT /users/:id。
	u, err := h.svc.Register(c.Request.Context(), RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     string(RoleClient),
	})
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusCreated, "User registered successfully", u)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.Fail(c, h.log, apperr.Wrap(apperr.KindValidation, "Email and password are required", err))
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}

	server.SetAuthCookie(c, h.authCfg, res.Token, time.Until(res.ExpiresAt))
	server.OK(c, http.StatusOK, "Login successful", gin.H{
		"user":      res.User,
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
	})
}

// logout 吊销当前 token 并清除 cookie。吊销失败只降级记录，登出仍然成功。
func (h *Handler) logout(c *gin.Context) {
	info, ok := server.AuthFromContext(c)
	if ok && h.sessions != nil && info.Token != "" {
		ttl := time.Duration(0)
		if claims, err := auth.ParseAccessToken(h.authCfg, info.Token); err == nil && claims.ExpiresAt != nil {
			ttl = time.Until(claims.ExpiresAt.Time)
		}
		if ttl > 0 {
			_ = h.sessions.Revoke(c.Request.Context(), info.Token, ttl)
		}
	}
	server.ClearAuthCookie(c, h.authCfg)
	server.OK(c, http.StatusOK, "Logout successful", nil)
}

func (h *Handler) me(c *gin.Context) {
	info, ok := server.AuthFromContext(c)
	if !ok {
		server.Fail(c, h.log, apperr.New(apperr.KindUnauthorized, "Not authenticated"))
		return
	}
	u, err := h.svc.Get(c.Request.Context(), info.Subject)
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "", u)
}

func (h *Handler) getByID(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "", u)
}

func (h *Handler) list(c *gin.Context) {
	offset, limit := server.Pagination(c)
	users, total, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "", gin.H{"items": users, "total": total})
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Role     *string `json:"role"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.Fail(c, h.log, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
		return
	}

	u, err := h.svc.Update(c.Request.Context(), c.Param("id"), UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "User updated successfully", u)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "User deleted successfully", nil)
}
