package member

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pborkovic/bunkermuseum-members/internal/auth"
)

// RegisterRoutes mounts member endpoints. Profile routes operate on the
// authenticated member; listing and deletion are admin-only.
func RegisterRoutes(protected, admin *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	protected.GET("/members/me", handler.profile)
	protected.PATCH("/members/me", handler.updateProfile)
	admin.GET("/members", handler.list)
	admin.DELETE("/members/:memberID", handler.remove)
}

type httpHandler struct {
	service *Service
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=128"`
	LastName  *string `json:"last_name" binding:"omitempty,max=128"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
}

func (h *httpHandler) profile(c *gin.Context) {
	memberID, _, ok := auth.RequireMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.service.Profile(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *httpHandler) updateProfile(c *gin.Context) {
	memberID, _, ok := auth.RequireMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), memberID, UpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *httpHandler) list(c *gin.Context) {
	page := Page{
		Offset: queryInt(c, "offset", 0),
		Limit:  queryInt(c, "limit", defaultPageLimit),
	}

	profiles, err := h.service.List(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": profiles})
}

func (h *httpHandler) remove(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), memberID); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete member"})
		return
	}

	c.Status(http.StatusNoContent)
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
