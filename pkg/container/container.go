package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"readtrack-backend/internal/config"
	infraCache "readtrack-backend/internal/infrastructure/cache"
	"readtrack-backend/internal/infrastructure/database"
	"readtrack-backend/pkg/cache"
	"readtrack-backend/pkg/jwt"

	bookHandler "readtrack-backend/internal/domains/book/handler"
	bookRepo "readtrack-backend/internal/domains/book/repository"
	bookService "readtrack-backend/internal/domains/book/service"
	recHandler "readtrack-backend/internal/domains/recommendation/handler"
	recRepo "readtrack-backend/internal/domains/recommendation/repository"
	recService "readtrack-backend/internal/domains/recommendation/service"
	reviewHandler "readtrack-backend/internal/domains/review/handler"
	reviewRepo "readtrack-backend/internal/domains/review/repository"
	reviewService "readtrack-backend/internal/domains/review/service"
	shelfHandler "readtrack-backend/internal/domains/shelf/handler"
	shelfRepo "readtrack-backend/internal/domains/shelf/repository"
	shelfService "readtrack-backend/internal/domains/shelf/service"
	userHandler "readtrack-backend/internal/domains/user/handler"
	userRepo "readtrack-backend/internal/domains/user/repository"
	userService "readtrack-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the whole dependency graph.
// Everything in it is a singleton for the application lifetime.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	UserRepo   userRepo.UserRepository
	BookRepo   bookRepo.BookRepository
	ShelfRepo  shelfRepo.ShelfRepository
	ReviewRepo reviewRepo.ReviewRepository
	RecRepo    recRepo.RecommendationRepository

	// Services
	UserService   userService.ServiceInterface
	BookService   bookService.ServiceInterface
	ShelfService  shelfService.ServiceInterface
	ReviewService reviewService.ServiceInterface
	RecService    recService.ServiceInterface

	// Handlers
	UserHandler   *userHandler.UserHandler
	BookHandler   *bookHandler.BookHandler
	ShelfHandler  *shelfHandler.ShelfHandler
	ReviewHandler *reviewHandler.ReviewHandler
	RecHandler    *recHandler.RecommendationHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds and wires the dependency graph.
// Initialization order matters: config, infrastructure, repositories,
// services, handlers.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// Step 1: configuration
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// Step 2: database
	log.Println("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// Step 3: cache. Redis failure is non-critical, the app degrades to
	// uncached reads.
	log.Println("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("✅ Redis connected")
		}
	}

	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	// Step 4: repositories
	c.initRepositories()

	// Step 5: services
	c.initServices()

	// Step 6: handlers
	c.initHandlers()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.BookRepo = bookRepo.NewPostgresBookRepository(pool)
	c.ShelfRepo = shelfRepo.NewPostgresShelfRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(pool)
	c.RecRepo = recRepo.NewPostgresRecommendationRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Cache)
	c.BookService = bookService.NewBookService(c.BookRepo, c.Cache)
	c.ShelfService = shelfService.NewShelfService(c.ShelfRepo, c.BookRepo, c.Cache)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.BookRepo, c.UserRepo, c.Cache)
	c.RecService = recService.NewRecommendationService(c.RecRepo, c.UserRepo, c.Cache)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.ShelfHandler = shelfHandler.NewShelfHandler(c.ShelfService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
	c.RecHandler = recHandler.NewRecommendationHandler(c.RecService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases resources; called during graceful shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("⚠️  Failed to close database: %v", err)
		} else {
			log.Println("✅ Database connections closed")
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("⚠️  Failed to close Redis: %v", err)
			} else {
				log.Println("✅ Redis connections closed")
			}
		}
	}

	log.Println("✅ Container cleanup completed")
}
