package customer

import (
	"context"
	"net/http"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/RentalDrive/RentalDrive/internal/common/logger"
	"github.com/RentalDrive/RentalDrive/internal/common/server"
	"github.com/RentalDrive/RentalDrive/internal/upload"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc     *Service
	uploads *upload.Store
	log     logger.Logger
}

func NewHandler(svc *Service, uploads *upload.Store, log logger.Logger) *Handler {
	return &Handler{svc: svc, uploads: uploads, log: log}
}

// Register 挂载客户档案路由；整组仅限 admin/secretary。
func (h *Handler) Register(api *gin.RouterGroup, authn, staffOnly gin.HandlerFunc) {
	g := api.Group("/customers")
	g.Use(authn, staffOnly)

	g.GET("", h.list)
	g.GET("/:id", h.getByID)
	g.GET("/email/:email", h.getByEmail)
	g.GET("/document/:document", h.getByDocument)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.PUT("/block/:id", h.block)
	g.POST("/:id/document", h.uploadDocument)
	g.POST("/:id/license", h.uploadLicense)
}

type createCustomerRequest struct {
	Name         string `json:"name" binding:"required"`
	Lastname     string `json:"lastname" binding:"required"`
	Document     string `json:"document" binding:"required"`
	TypeDocument string `json:"typeDocument"`
	Phone        string `json:"phone"`
	Email        string `json:"email" binding:"required,email"`
	IsForeign    bool   `json:"isForeign"`
}

func (h *Handler) create(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.Fail(c, h.log, apperr.Wrap(apperr.KindValidation, "name, lastname, document and email are required", err))
		return
	}

	cust, err := h.svc.Create(c.Request.Context(), CreateInput{
		Name:         req.Name,
		Lastname:     req.Lastname,
		Document:     req.Document,
		TypeDocument: req.TypeDocument,
		Phone:        req.Phone,
		Email:        req.Email,
		IsForeign:    req.IsForeign,
	})
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusCreated, "Customer created successfully", cust)
}

type updateCustomerRequest struct {
	Name         *string `json:"name"`
	Lastname     *string `json:"lastname"`
	Document     *string `json:"document"`
	TypeDocument *string `json:"typeDocument"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email" binding:"omitempty,email"`
	IsForeign    *bool   `json:"isForeign"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.Fail(c, h.log, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
		return
	}

	cust, err := h.svc.Update(c.Request.Context(), c.Param("id"), UpdateInput{
		Name:         req.Name,
		Lastname:     req.Lastname,
		Document:     req.Document,
		TypeDocument: req.TypeDocument,
		Phone:        req.Phone,
		Email:        req.Email,
		IsForeign:    req.IsForeign,
	})
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "Customer updated successfully", cust)
}

func (h *Handler) getByID(c *gin.Context) {
	cust, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "", cust)
}

func (h *Handler) getByEmail(c *gin.Context) {
	cust, err := h.svc.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "", cust)
}

func (h *Handler) getByDocument(c *gin.Context) {
	cust, err := h.svc.GetByDocument(c.Request.Context(), c.Param("document"))
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "", cust)
}

func (h *Handler) list(c *gin.Context) {
	offset, limit := server.Pagination(c)
	customers, total, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "", gin.H{"items": customers, "total": total})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "Customer deleted successfully", nil)
}

type blockRequest struct {
	Blocked *bool `json:"blocked"`
}

func (h *Handler) block(c *gin.Context) {
	// 不带 body 时默认为拉黑
	blocked := true
	var req blockRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Blocked != nil {
		blocked = *req.Blocked
	}

	cust, err := h.svc.SetBlocked(c.Request.Context(), c.Param("id"), blocked)
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	msg := "Customer blocked successfully"
	if !blocked {
		msg = "Customer unblocked successfully"
	}
	server.OK(c, http.StatusOK, msg, cust)
}

func (h *Handler) uploadDocument(c *gin.Context) {
	h.uploadFile(c, "document", h.svc.SetDocumentFile)
}

func (h *Handler) uploadLicense(c *gin.Context) {
	h.uploadFile(c, "license", h.svc.SetLicenseFile)
}

func (h *Handler) uploadFile(c *gin.Context, field string, set func(ctx context.Context, id, path string) (*Customer, error)) {
	fh, err := c.FormFile(field)
	if err != nil {
		server.Fail(c, h.log, apperr.New(apperr.KindValidation, field+" file is required"))
		return
	}

	path, err := h.uploads.Save(fh, upload.KindDocument)
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}

	cust, err := set(c.Request.Context(), c.Param("id"), path)
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "File uploaded successfully", cust)
}
