package avatar

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pborkovic/bunkermuseum-members/internal/auth"
	"github.com/pborkovic/bunkermuseum-members/internal/metrics"
)

// RegisterRoutes mounts the profile-picture endpoints. Serving is public;
// upload and deletion require an authenticated member.
func RegisterRoutes(public, protected *gin.RouterGroup, service *Service, resolver URLResolver) {
	handler := &httpHandler{service: service, resolver: resolver}
	public.GET("/profile-picture/:memberID", handler.serve)
	protected.POST("/profile-picture", handler.upload)
	protected.DELETE("/profile-picture", handler.remove)
}

type httpHandler struct {
	service  *Service
	resolver URLResolver
}

func (h *httpHandler) upload(c *gin.Context) {
	memberID, _, ok := auth.RequireMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		metrics.UploadVerdicts.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		metrics.UploadVerdicts.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}

	declaredType := fileHeader.Header.Get("Content-Type")
	verdict := h.service.ValidateUpload(data, declaredType, fileHeader.Size)
	if !verdict.Valid {
		metrics.UploadVerdicts.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": verdict.Reason})
		return
	}

	stored, err := h.service.Store(c.Request.Context(), memberID, data, verdict.Format)
	if err != nil {
		metrics.UploadVerdicts.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store profile picture"})
		return
	}
	metrics.UploadVerdicts.WithLabelValues("accepted").Inc()

	url, _ := h.resolver.Resolve(memberID, &stored.ObjectPath)
	c.JSON(http.StatusOK, gin.H{
		"message": verdict.Reason,
		"format":  verdict.Format,
		"url":     url,
	})
}

// serve streams the stored bytes. The t query parameter exists only to vary
// the URL for cache invalidation and is deliberately ignored here.
func (h *httpHandler) serve(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	a, reader, err := h.service.Open(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, ErrAvatarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile picture not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile picture"})
		return
	}
	defer reader.Close()

	c.Header("Content-Type", a.ContentType)
	c.Header("Content-Length", fmt.Sprintf("%d", a.SizeBytes))

	if _, err := io.Copy(c.Writer, reader); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
}

func (h *httpHandler) remove(c *gin.Context) {
	memberID, _, ok := auth.RequireMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), memberID); err != nil {
		if errors.Is(err, ErrAvatarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile picture not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete profile picture"})
		return
	}

	c.Status(http.StatusNoContent)
}
