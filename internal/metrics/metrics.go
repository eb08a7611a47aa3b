package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UploadVerdicts counts profile-picture upload outcomes by result label.
var UploadVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "members_profile_picture_uploads_total",
	Help: "Profile picture upload attempts partitioned by outcome.",
}, []string{"outcome"})

// Register attaches the Prometheus metrics endpoint to the router.
func Register(router *gin.Engine, path string) {
	router.GET(path, gin.WrapH(promhttp.Handler()))
}
