package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"biteclub-backend/internal/config"
	infraCache "biteclub-backend/internal/infrastructure/cache"
	"biteclub-backend/internal/infrastructure/database"
	"biteclub-backend/internal/infrastructure/telephony"
	"biteclub-backend/pkg/cache"
	"biteclub-backend/pkg/jwt"

	creditHandler "biteclub-backend/internal/domains/credit/handler"
	creditRepo "biteclub-backend/internal/domains/credit/repository"
	creditService "biteclub-backend/internal/domains/credit/service"
	menuHandler "biteclub-backend/internal/domains/menu/handler"
	menuRepo "biteclub-backend/internal/domains/menu/repository"
	menuService "biteclub-backend/internal/domains/menu/service"
	orderHandler "biteclub-backend/internal/domains/order/handler"
	orderJob "biteclub-backend/internal/domains/order/job"
	orderRepo "biteclub-backend/internal/domains/order/repository"
	orderService "biteclub-backend/internal/domains/order/service"
	promoHandler "biteclub-backend/internal/domains/promotion/handler"
	promoService "biteclub-backend/internal/domains/promotion/service"
	restaurantHandler "biteclub-backend/internal/domains/restaurant/handler"
	restaurantRepo "biteclub-backend/internal/domains/restaurant/repository"
	restaurantService "biteclub-backend/internal/domains/restaurant/service"
	studentHandler "biteclub-backend/internal/domains/student/handler"
	studentRepo "biteclub-backend/internal/domains/student/repository"
	studentService "biteclub-backend/internal/domains/student/service"

	"github.com/hibiken/asynq"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	TaskClient *asynq.Client
	Telephony  *telephony.Client

	// Repositories
	StudentRepo    studentRepo.StudentRepository
	RestaurantRepo restaurantRepo.RestaurantRepository
	MenuRepo       menuRepo.MenuRepository
	CreditRepo     creditRepo.CreditRepository
	OrderRepo      orderRepo.OrderRepository

	// Services
	StudentService    studentService.StudentService
	RestaurantService restaurantService.RestaurantService
	MenuService       menuService.MenuService
	CreditService     creditService.CreditService
	OrderService      orderService.OrderService
	Evaluator         *promoService.Evaluator
	QuoteService      *promoService.QuoteService

	// Handlers
	StudentHandler    *studentHandler.StudentHandler
	RestaurantHandler *restaurantHandler.RestaurantHandler
	MenuHandler       *menuHandler.MenuHandler
	CreditHandler     *creditHandler.CreditHandler
	OrderHandler      *orderHandler.OrderHandler
	PromotionHandler  *promoHandler.PromotionHandler

	// Jobs (worker side)
	DispatchCallHandler *orderJob.DispatchCallHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

func NewContainer() (*Container, error) {
	log.Println("Initializing DI container...")

	c := &Container{}

	// Step 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("Config loaded (environment: %s)", cfg.App.Environment)

	// Step 2: database
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
	log.Println("Database connected")

	// Step 3: redis (cache + task broker)
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		// Cache misses are survivable; checkout is not blocked on
		// Redis being up.
		log.Printf("WARNING: Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("Redis connected")
	}
	c.Cache = redisCache

	c.TaskClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Step 4: auth + external clients
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	c.Telephony = telephony.NewClient(cfg.Telephony.APIURL, cfg.Telephony.APIKey, cfg.Telephony.CallerID)

	// Step 5: repositories
	c.initRepositories()

	// Step 6: services
	c.initServices()

	// Step 7: handlers
	c.initHandlers()

	log.Println("DI container initialized")
	return c, nil
}

// ========================================
// LAYER INITIALIZATION
// ========================================

func (c *Container) initRepositories() {
	c.StudentRepo = studentRepo.NewPostgresStudentRepository(c.DB)
	c.RestaurantRepo = restaurantRepo.NewPostgresRestaurantRepository(c.DB)
	c.MenuRepo = menuRepo.NewPostgresMenuRepository(c.DB)
	c.CreditRepo = creditRepo.NewPostgresCreditRepository(c.DB)
	c.OrderRepo = orderRepo.NewPostgresOrderRepository(c.DB)
}

func (c *Container) initServices() {
	c.Evaluator = promoService.NewEvaluator()

	c.StudentService = studentService.NewStudentService(c.StudentRepo, c.JWTManager)
	c.RestaurantService = restaurantService.NewRestaurantService(c.RestaurantRepo, c.JWTManager)
	c.MenuService = menuService.NewMenuService(c.MenuRepo, c.DB, c.Cache)
	c.CreditService = creditService.NewCreditService(c.CreditRepo, c.DB)
	c.OrderService = orderService.NewOrderService(
		c.OrderRepo,
		c.MenuRepo,
		c.CreditRepo,
		c.RestaurantRepo,
		c.Evaluator,
		c.DB,
		c.TaskClient,
	)
	c.QuoteService = promoService.NewQuoteService(c.Evaluator, c.RestaurantRepo, c.OrderRepo)
}

func (c *Container) initHandlers() {
	c.StudentHandler = studentHandler.NewStudentHandler(c.StudentService)
	c.RestaurantHandler = restaurantHandler.NewRestaurantHandler(c.RestaurantService)
	c.MenuHandler = menuHandler.NewMenuHandler(c.MenuService)
	c.CreditHandler = creditHandler.NewCreditHandler(c.CreditService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.PromotionHandler = promoHandler.NewPromotionHandler(c.QuoteService)

	c.DispatchCallHandler = orderJob.NewDispatchCallHandler(c.OrderRepo, c.RestaurantRepo, c.Telephony)
}

// ========================================
// SHUTDOWN
// ========================================

// Close releases infrastructure connections in reverse order.
func (c *Container) Close() {
	if c.TaskClient != nil {
		if err := c.TaskClient.Close(); err != nil {
			log.Printf("error closing task client: %v", err)
		}
	}
	if rc, ok := c.Cache.(interface{ Close() error }); ok {
		if err := rc.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
