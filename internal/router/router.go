package router

import (
	"context"
	"net/http"

	"leximind-server/internal/config"
	"leximind-server/internal/middleware"
	"leximind-server/internal/modules"
	"leximind-server/internal/platform/metrics"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Router struct {
	modules *modules.AppModules
	cfg     *config.Config
	metrics *metrics.Metrics
	redis   *redis.Client
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func NewRouter(
	appModules *modules.AppModules,
	cfg *config.Config,
	m *metrics.Metrics,
	redisClient *redis.Client,
	lg *zap.Logger,
) *Router {
	ctx, cancel := context.WithCancel(context.Background())
	return &Router{
		modules: appModules,
		cfg:     cfg,
		metrics: m,
		redis:   redisClient,
		logger:  lg,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (rt *Router) Init(r *gin.Engine) {
	r.Use(
		middleware.Recovery(rt.logger),
		middleware.RequestID(),
		middleware.Logger(rt.logger),
		rt.metrics.Middleware(),
		middleware.SecurityHeaders(),
		middleware.CORS(config.SplitList(rt.cfg.Server.CORSOrigins)),
		middleware.BodyLimit(rt.cfg.Server.MaxBodyMB),
	)

	// 认证限流在 /auth 各接口间共用一个实例
	authLimiter := middleware.RateLimit(rt.ctx, rt.cfg.RateLimit, rt.redis, rt.cfg.Redis.Prefix, "auth")
	gate := middleware.Authenticate(rt.modules.Auth.Service.Issuer(), rt.modules.User.Store)

	api := r.Group("/api")

	registerSystemRoutes(r, rt.modules.System.Handler, rt.metrics)
	registerAuthRoutes(r.Group("/auth"), authLimiter, gate, rt.modules.Auth.Handler)
	registerPublicRoutes(api, authLimiter, rt.modules.Blog.Handler, rt.modules.Auth.Handler)
	registerUserRoutes(api.Group("", gate), rt.modules.Note.Handler, rt.modules.Feedback.Handler)
	registerAdminRoutes(api.Group("", gate, middleware.RequireAdmin()), adminHandlers{
		blog:     rt.modules.Blog.Handler,
		feedback: rt.modules.Feedback.Handler,
		stats:    rt.modules.Stats.Handler,
		system:   rt.modules.System.Handler,
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "API not found"})
	})
}

// Close 停止限流器的后台清理。
func (rt *Router) Close() {
	rt.cancel()
}
