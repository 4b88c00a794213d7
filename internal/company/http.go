package company

import (
	"net/http"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/RentalDrive/RentalDrive/internal/common/logger"
	"github.com/RentalDrive/RentalDrive/internal/common/server"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
	log logger.Logger
}

func NewHandler(svc *Service, log logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register 挂载公司资料路由；读取对登录用户开放，写入仅限 admin。
func (h *Handler) Register(api *gin.RouterGroup, authn, adminOnly gin.HandlerFunc) {
	g := api.Group("/company")
	g.Use(authn)

	g.GET("", h.get)
	g.POST("", adminOnly, h.create)
	g.PUT("", adminOnly, h.update)
}

func (h *Handler) get(c *gin.Context) {
	profile, err := h.svc.Get(c.Request.Context())
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "", profile)
}

type companyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	Website     string `json:"website"`
	TaxID       string `json:"taxId"`
}

func (h *Handler) create(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.Fail(c, h.log, apperr.Wrap(apperr.KindValidation, "company name is required", err))
		return
	}

	profile, err := h.svc.Create(c.Request.Context(), Input{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		TaxID:       req.TaxID,
	})
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusCreated, "Company profile created successfully", profile)
}

type updateCompanyRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Website     *string `json:"website"`
	TaxID       *string `json:"taxId"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.Fail(c, h.log, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
		return
	}

	profile, err := h.svc.Update(c.Request.Context(), UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		TaxID:       req.TaxID,
	})
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "Company profile updated successfully", profile)
}
