// Package server contains the HTTP handlers and wiring for the API.
package server

import (
	"context"
	"fmt"
	"time"

	"snsapp/internal/aiclient"
	"snsapp/internal/cache"
	"snsapp/internal/config"
	"snsapp/internal/database"
	"snsapp/internal/feed"
	"snsapp/internal/middleware"
	"snsapp/internal/models"
	"snsapp/internal/repository"
	"snsapp/internal/service"
	"snsapp/internal/txhook"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const sideEffectQueueSize = 256

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	dispatcher     *txhook.Dispatcher

	memberRepo    repository.MemberRepository
	followRepo    repository.FollowRepository
	postRepo      repository.PostRepository
	imageRepo     repository.PostImageRepository
	commentRepo   repository.CommentRepository
	recommentRepo repository.RecommentRepository

	postService      *service.PostService
	commentService   *service.CommentService
	recommentService *service.RecommentService
	likeService      *service.LikeService
	followService    *service.FollowService
	botService       *service.BotService
	summaryService   *service.SummaryService
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests and bootstrap layers that establish DB/Redis themselves use this.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("snsapp-api"),
	}

	s.memberRepo = repository.NewMemberRepository(db)
	s.followRepo = repository.NewFollowRepository(db)
	s.postRepo = repository.NewPostRepository(db)
	s.imageRepo = repository.NewPostImageRepository(db)
	s.commentRepo = repository.NewCommentRepository(db)
	s.recommentRepo = repository.NewRecommentRepository(db)
	postLikeRepo := repository.NewPostLikeRepository(db)
	commentLikeRepo := repository.NewCommentLikeRepository(db)
	recommentLikeRepo := repository.NewRecommentLikeRepository(db)
	botEventRepo := repository.NewBotEventRepository(db)

	s.dispatcher = txhook.NewDispatcher(cfg.SideEffectWorkers, sideEffectQueueSize)
	runner := txhook.NewRunner(db, s.dispatcher)
	enricher := feed.NewEnricher(s.memberRepo, s.followRepo, s.imageRepo)
	ai := aiclient.New(cfg.AIServerURL)

	// The bot service posts and replies through PostService and
	// RecommentService, which in turn schedule bot work post-commit. The
	// trigger closures below late-bind so both directions can be wired.
	s.postService = service.NewPostService(
		runner, s.postRepo, s.imageRepo, s.memberRepo, postLikeRepo, enricher,
		s.isAdminByUserID,
		func(ctx context.Context, postID uint) { s.summaryService.ProcessYoutubeSummary(ctx, postID) },
		func(ctx context.Context, board models.BoardType) { s.botService.MaybeCreateBoardPost(ctx, board) },
	)
	s.commentService = service.NewCommentService(
		runner, s.commentRepo, s.postRepo, s.memberRepo, commentLikeRepo, enricher,
		s.isAdminByUserID,
		func(ctx context.Context, commentID uint) { s.botService.MaybeReplyToComment(ctx, commentID) },
	)
	s.recommentService = service.NewRecommentService(
		runner, s.recommentRepo, s.commentRepo, s.memberRepo, recommentLikeRepo, enricher,
		s.isAdminByUserID,
	)
	s.likeService = service.NewLikeService(
		runner, s.postRepo, s.commentRepo, s.recommentRepo,
		postLikeRepo, commentLikeRepo, recommentLikeRepo, enricher,
	)
	s.followService = service.NewFollowService(runner, s.memberRepo, s.followRepo, enricher)
	s.summaryService = service.NewSummaryService(s.postRepo, ai)
	s.botService = service.NewBotService(
		s.memberRepo, s.postRepo, s.commentRepo, s.recommentRepo, botEventRepo,
		ai, s.recommentService, s.postService, cfg.BotPostCadence,
	)

	return s, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Feed reads take an optional token: anonymous viewers get the page
	// without viewer-relative flags.
	posts := api.Group("/posts", middleware.AuthOptional)
	posts.Get("/", s.GetBoardPosts)
	posts.Get("/:id/comments", s.GetComments)
	posts.Get("/:id/likes", s.GetPostLikers)
	posts.Get("/:id", s.GetPost)

	comments := api.Group("/comments", middleware.AuthOptional)
	comments.Get("/:id/recomments", s.GetRecomments)
	comments.Get("/:id/likes", s.GetCommentLikers)

	recomments := api.Group("/recomments", middleware.AuthOptional)
	recomments.Get("/:id/likes", s.GetRecommentLikers)

	users := api.Group("/users", middleware.AuthOptional)
	users.Get("/:id/posts", s.GetUserPosts)
	users.Get("/:id/followers", s.GetFollowers)
	users.Get("/:id/followings", s.GetFollowings)

	// Writes require authentication. Content creation and the high-churn
	// like/follow toggles are rate limited per authenticated member.
	protected := api.Group("", middleware.AuthRequired)
	writeLimit := middleware.RateLimit(s.redis, 30, time.Minute, "write")
	likeLimit := middleware.RateLimit(s.redis, 60, time.Minute, "like")
	followLimit := middleware.RateLimit(s.redis, 30, time.Minute, "follow")

	protected.Post("/posts", writeLimit, s.CreatePost)
	protected.Delete("/posts/:id", s.DeletePost)
	protected.Post("/posts/:id/likes", likeLimit, s.LikePost)
	protected.Delete("/posts/:id/likes", likeLimit, s.UnlikePost)
	protected.Post("/posts/:id/comments", writeLimit, s.CreateComment)

	protected.Delete("/comments/:id", s.DeleteComment)
	protected.Post("/comments/:id/likes", likeLimit, s.LikeComment)
	protected.Delete("/comments/:id/likes", likeLimit, s.UnlikeComment)
	protected.Post("/comments/:id/recomments", writeLimit, s.CreateRecomment)

	protected.Delete("/recomments/:id", s.DeleteRecomment)
	protected.Post("/recomments/:id/likes", likeLimit, s.LikeRecomment)
	protected.Delete("/recomments/:id/likes", likeLimit, s.UnlikeRecomment)

	protected.Post("/users/:id/follows", followLimit, s.FollowMember)
	protected.Delete("/users/:id/follows", followLimit, s.UnfollowMember)
}

// DB exposes the database handle for bootstrap tasks like migrations.
func (s *Server) DB() *gorm.DB {
	return s.db
}

// Shutdown drains the side-effect queue before the process exits so hooks
// scheduled by in-flight requests are not lost.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.dispatcher.Shutdown(ctx)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is an optional cache layer here, not a readiness gate.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}
