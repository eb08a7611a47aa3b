package maillog

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes mounts email log endpoints on an admin-only group.
func RegisterRoutes(admin *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	admin.POST("/email-logs", handler.record)
	admin.GET("/email-logs", handler.list)
	admin.GET("/email-logs/:logID", handler.get)
}

type httpHandler struct {
	service *Service
}

type recordRequest struct {
	MemberID  *uuid.UUID `json:"member_id"`
	Recipient string     `json:"recipient" binding:"required,max=320"`
	Subject   string     `json:"subject" binding:"required,max=512"`
	Body      *string    `json:"body"`
	Status    string     `json:"status" binding:"omitempty,oneof=sent failed"`
}

func (h *httpHandler) record(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.service.Record(c.Request.Context(), CreateInput{
		MemberID:  req.MemberID,
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Body:      req.Body,
		Status:    req.Status,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidEmailLog) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record email log"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *httpHandler) list(c *gin.Context) {
	filter := Filter{
		Search:     c.Query("q"),
		SystemOnly: c.Query("system") == "true",
	}

	if raw := c.Query("member_id"); raw != "" {
		memberID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
			return
		}
		filter.MemberID = &memberID
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		filter.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		filter.To = &to
	}

	page := Page{
		Offset: queryInt(c, "offset", 0),
		Limit:  queryInt(c, "limit", defaultPageLimit),
	}

	entries, err := h.service.List(c.Request.Context(), filter, page)
	if err != nil {
		if errors.Is(err, ErrInvalidEmailLog) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list email logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"email_logs": entries})
}

func (h *httpHandler) get(c *gin.Context) {
	logID, err := uuid.Parse(c.Param("logID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	entry, err := h.service.Get(c.Request.Context(), logID)
	if err != nil {
		if errors.Is(err, ErrEmailLogNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "email log not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load email log"})
		return
	}

	c.JSON(http.StatusOK, entry)
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
