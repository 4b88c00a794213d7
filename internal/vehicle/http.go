package vehicle

import (
	"net/http"
	"strconv"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/RentalDrive/RentalDrive/internal/common/logger"
	"github.com/RentalDrive/RentalDrive/internal/common/server"
	"github.com/RentalDrive/RentalDrive/internal/upload"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations 在 gin 的 binding 校验器上注册 availability 取值规则。
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("availability", func(fl validator.FieldLevel) bool {
			return Availability(fl.Field().String()).Valid()
		})
	}
}

type Handler struct {
	svc     *Service
	uploads *upload.Store
	log     logger.Logger
}

func NewHandler(svc *Service, uploads *upload.Store, log logger.Logger) *Handler {
	return &Handler{svc: svc, uploads: uploads, log: log}
}

// Register 挂载车辆路由；写操作仅限 admin/secretary。
func (h *Handler) Register(api *gin.RouterGroup, authn, staffOnly gin.HandlerFunc) {
	g := api.Group("/vehicles")
	g.Use(authn)

	g.GET("", h.list)
	g.GET("/:id", h.getByID)
	g.GET("/brand/:brand", h.byBrand)
	g.GET("/model/:model", h.byModel)
	g.GET("/year/:year", h.byYear)

	g.POST("", staffOnly, h.create)
	g.PUT("/:id", staffOnly, h.update)
	g.DELETE("/:id", staffOnly, h.delete)
	g.POST("/:id/image", staffOnly, h.uploadImage)
}

type createVehicleRequest struct {
	Model        string  `json:"model" binding:"required"`
	Year         int     `json:"year" binding:"required,gt=0"`
	Brand        string  `json:"brand" binding:"required"`
	Availability string  `json:"availability" binding:"omitempty,availability"`
	Price        float64 `json:"price" binding:"required,gt=0"`
}

func (h *Handler) create(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.Fail(c, h.log, apperr.Wrap(apperr.KindValidation, "model, year, brand and price are required", err))
		return
	}

	v, err := h.svc.Create(c.Request.Context(), CreateVehicleInput{
		Model:        req.Model,
		Year:         req.Year,
		Brand:        req.Brand,
		Availability: req.Availability,
		Price:        req.Price,
	})
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusCreated, "Vehicle created successfully", v)
}

type updateVehicleRequest struct {
	Model        *string  `json:"model"`
	Year         *int     `json:"year"`
	Brand        *string  `json:"brand"`
	Availability *string  `json:"availability" binding:"omitempty"`
	Price        *float64 `json:"price"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.Fail(c, h.log, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
		return
	}

	v, err := h.svc.Update(c.Request.Context(), c.Param("id"), UpdateVehicleInput{
		Model:        req.Model,
		Year:         req.Year,
		Brand:        req.Brand,
		Availability: req.Availability,
		Price:        req.Price,
	})
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "Vehicle updated successfully", v)
}

func (h *Handler) getByID(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "", v)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "Vehicle deleted successfully", nil)
}

func (h *Handler) list(c *gin.Context) {
	f := ListFilter{
		Brand:        c.Query("brand"),
		Model:        c.Query("model"),
		Availability: Availability(c.Query("availability")),
	}
	if y := c.Query("year"); y != "" {
		if n, err := strconv.Atoi(y); err == nil {
			f.Year = n
		}
	}
	if p := c.Query("minPrice"); p != "" {
		if n, err := strconv.ParseFloat(p, 64); err == nil {
			f.PriceMin = n
		}
	}
	if p := c.Query("maxPrice"); p != "" {
		if n, err := strconv.ParseFloat(p, 64); err == nil {
			f.PriceMax = n
		}
	}
	f.Offset, f.Limit = server.Pagination(c)

	vehicles, total, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "", gin.H{"items": vehicles, "total": total})
}

func (h *Handler) byBrand(c *gin.Context) {
	h.listWith(c, ListFilter{Brand: c.Param("brand")})
}

func (h *Handler) byModel(c *gin.Context) {
	h.listWith(c, ListFilter{Model: c.Param("model")})
}

func (h *Handler) byYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		server.Fail(c, h.log, apperr.New(apperr.KindValidation, "invalid year"))
		return
	}
	h.listWith(c, ListFilter{Year: year})
}

func (h *Handler) listWith(c *gin.Context, f ListFilter) {
	f.Offset, f.Limit = server.Pagination(c)
	vehicles, total, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "", gin.H{"items": vehicles, "total": total})
}

func (h *Handler) uploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		server.Fail(c, h.log, apperr.New(apperr.KindValidation, "image file is required"))
		return
	}

	path, err := h.uploads.Save(fh, upload.KindImage)
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}

	v, err := h.svc.SetImage(c.Request.Context(), c.Param("id"), path)
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "Vehicle image uploaded successfully", v)
}
