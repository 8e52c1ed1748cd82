package api

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"equipment-tracker/internal/logging"
	"equipment-tracker/internal/metrics"
	"equipment-tracker/internal/mw"
	"equipment-tracker/internal/store"
	"equipment-tracker/internal/validation"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(validation.JSONFieldName)
		if err := validation.Register(v); err != nil {
			panic(err)
		}
	}
}

// RouterOptions configures the optional middleware of NewRouter.
type RouterOptions struct {
	Metrics     *metrics.Registry
	RateLimiter *mw.IPRateLimiter
}

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logging.Error("panic recovered", "request_id", mw.GetRequestID(c), "panic", recovered)
		c.AbortWithStatusJSON(500, errorResponse{Error: "Internal server error"})
	}))
	r.Use(mw.RequestID(), mw.Observe(opts.Metrics))

	handler := NewHandler(s, opts.Metrics)

	r.GET("/healthz", handler.Health)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// API group
	api := r.Group("/api")
	if opts.RateLimiter != nil {
		api.Use(mw.RateLimiter(opts.RateLimiter, opts.Metrics))
	}
	{
		api.GET("/equipment", handler.ListEquipment)
		api.POST("/equipment", handler.CreateEquipment)
		api.PUT("/equipment/:id", handler.UpdateEquipment)
		api.DELETE("/equipment/:id", handler.DeleteEquipment)
	}

	return r
}
