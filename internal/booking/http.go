package booking

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/RentalDrive/RentalDrive/internal/common/logger"
	"github.com/RentalDrive/RentalDrive/internal/common/server"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
	pdf *PDFService
	log logger.Logger
}

func NewHandler(svc *Service, pdf *PDFService, log logger.Logger) *Handler {
	return &Handler{svc: svc, pdf: pdf, log: log}
}

// Register 挂载预订路由。client 可建单查自己的单；报表与删除仅限 staff。
func (h *Handler) Register(api *gin.RouterGroup, authn, staffOnly gin.HandlerFunc) {
	g := api.Group("/bookings")
	g.Use(authn)

	g.GET("", h.list)
	g.GET("/:id", h.getByID)
	g.GET("/user/:userId", h.byUser)
	g.GET("/vehicle/:vehicleId", staffOnly, h.byVehicle)
	g.GET("/status/:status", staffOnly, h.byStatus)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", staffOnly, h.delete)

	g.PUT("/:id/convert-to-rental", staffOnly, h.convertToRental)
	g.PUT("/:id/cancel", h.cancel)
	g.GET("/:id/generate-rental-pdf", h.rentalPDF)
	g.GET("/report/pdf", staffOnly, h.reportPDF)
}

type createBookingRequest struct {
	UserID    string    `json:"userId"`
	VehicleID string    `json:"vehicleId" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	Price     float64   `json:"price" binding:"required,gt=0"`
}

func (h *Handler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.Fail(c, h.log, apperr.Wrap(apperr.KindValidation, "vehicleId, startDate, endDate and price are required", err))
		return
	}

	// client 只能以自己的身份下单;staff 可代客指定 userId
	userID := req.UserID
	info, _ := server.AuthFromContext(c)
	if userID == "" || info.Role == "client" {
		userID = info.Subject
	}

	b, err := h.svc.Create(c.Request.Context(), CreateInput{
		UserID:    userID,
		VehicleID: req.VehicleID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Price:     req.Price,
	})
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusCreated, "Booking created successfully", b)
}

func (h *Handler) convertToRental(c *gin.Context) {
	b, err := h.svc.ConvertToRental(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "Booking converted to rental successfully", b)
}

func (h *Handler) cancel(c *gin.Context) {
	// client 只能取消自己的预订
	if info, ok := server.AuthFromContext(c); ok && info.Role == "client" {
		b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			server.Fail(c, h.log, err)
			return
		}
		if b.UserID != info.Subject {
			server.Fail(c, h.log, apperr.New(apperr.KindForbidden, "Cannot cancel another user's booking"))
			return
		}
	}

	if err := h.svc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "Booking cancelled successfully", nil)
}

func (h *Handler) getByID(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	if info, ok := server.AuthFromContext(c); ok && info.Role == "client" && b.UserID != info.Subject {
		server.Fail(c, h.log, apperr.New(apperr.KindForbidden, "Access denied"))
		return
	}
	server.OK(c, http.StatusOK, "", b)
}

type updateBookingRequest struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Price     *float64   `json:"price"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.Fail(c, h.log, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
		return
	}

	b, err := h.svc.Update(c.Request.Context(), c.Param("id"), UpdateInput{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Price:     req.Price,
	})
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "Booking updated successfully", b)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "Booking deleted successfully", nil)
}

func (h *Handler) list(c *gin.Context) {
	f := ListFilter{
		Status: Status(c.Query("status")),
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
	if d := c.Query("from"); d != "" {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			f.StartFrom = t
		}
	}
	if d := c.Query("to"); d != "" {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			f.StartTo = t
		}
	}

	// client 只能看自己的预订
	if info, ok := server.AuthFromContext(c); ok && info.Role == "client" {
		f.UserID = info.Subject
	}

	h.listWith(c, f)
}

func (h *Handler) byUser(c *gin.Context) {
	userID := c.Param("userId")
	if info, ok := server.AuthFromContext(c); ok && info.Role == "client" && userID != info.Subject {
		server.Fail(c, h.log, apperr.New(apperr.KindForbidden, "Access denied"))
		return
	}
	h.listWith(c, ListFilter{UserID: userID})
}

func (h *Handler) byVehicle(c *gin.Context) {
	h.listWith(c, ListFilter{VehicleID: c.Param("vehicleId")})
}

func (h *Handler) byStatus(c *gin.Context) {
	h.listWith(c, ListFilter{Status: Status(c.Param("status"))})
}

func (h *Handler) listWith(c *gin.Context, f ListFilter) {
	f.Offset, f.Limit = server.Pagination(c)
	bookings, total, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		server.Fail(c, h.log, err)
		return
	}
	server.OK(c, http.StatusOK, "", gin.H{"items": bookings, "total": total})
}

func (h *Handler) rentalPDF(c *gin.Context) {
	if info, ok := server.AuthFromContext(c); ok && info.Role == "client" {
		b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			server.Fail(c, h.log, err)
			return
		}
		if b.UserID != info.Subject {
			server.Fail(c, h.log, apperr.New(apperr.KindForbidden, "Access denied"))
			return
		}
	}

	var buf bytes.Buffer
	if err := h.pdf.RentalContract(c.Request.Context(), &buf, c.Param("id")); err != nil {
		server.Fail(c, h.log, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="rental-`+c.Param("id")+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *Handler) reportPDF(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.pdf.Report(c.Request.Context(), &buf); err != nil {
		server.Fail(c, h.log, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="bookings-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
