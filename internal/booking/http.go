package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pborkovic/bunkermuseum-members/internal/auth"
)

// RegisterRoutes mounts booking endpoints. Members manage their own
// bookings; the date-range overview is admin-only.
func RegisterRoutes(protected, admin *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	protected.POST("/bookings", handler.create)
	protected.GET("/bookings", handler.listOwn)
	protected.GET("/bookings/:bookingID", handler.get)
	protected.DELETE("/bookings/:bookingID", handler.cancel)
	admin.GET("/bookings/range", handler.listRange)
}

type httpHandler struct {
	service *Service
}

type createBookingRequest struct {
	Purpose   string    `json:"purpose" binding:"required,max=256"`
	VisitDate time.Time `json:"visit_date" binding:"required"`
	PartySize int       `json:"party_size" binding:"required,min=1"`
	Notes     *string   `json:"notes" binding:"omitempty,max=1024"`
}

func (h *httpHandler) create(c *gin.Context) {
	memberID, _, ok := auth.RequireMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), memberID, CreateInput{
		Purpose:   req.Purpose,
		VisitDate: req.VisitDate,
		PartySize: req.PartySize,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidBooking) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *httpHandler) listOwn(c *gin.Context) {
	memberID, _, ok := auth.RequireMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page := Page{
		Offset: queryInt(c, "offset", 0),
		Limit:  queryInt(c, "limit", defaultPageLimit),
	}

	bookings, err := h.service.ListByMember(c.Request.Context(), memberID, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *httpHandler) get(c *gin.Context) {
	memberID, _, ok := auth.RequireMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.service.Get(c.Request.Context(), memberID, bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load booking"})
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *httpHandler) cancel(c *gin.Context) {
	memberID, _, ok := auth.RequireMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), memberID, bookingID); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *httpHandler) listRange(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}

	page := Page{
		Offset: queryInt(c, "offset", 0),
		Limit:  queryInt(c, "limit", defaultPageLimit),
	}

	bookings, err := h.service.ListInRange(c.Request.Context(), from, to, page)
	if err != nil {
		if errors.Is(err, ErrInvalidBooking) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
