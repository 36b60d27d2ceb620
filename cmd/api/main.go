package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "closetshare/internal/common/api"
	"closetshare/internal/common/apperr"
	"closetshare/internal/config"
	"closetshare/internal/database"
	"closetshare/internal/features/auth"
	"closetshare/internal/features/closet"
	"closetshare/internal/features/contract"
	"closetshare/internal/features/friend"
	"closetshare/internal/features/group"
	"closetshare/internal/features/notification"
	"closetshare/internal/features/overdue"
	"closetshare/internal/features/store"
	"closetshare/internal/features/system"
	"closetshare/internal/features/user"
	"closetshare/internal/logger"
	"closetshare/internal/middleware"
	"closetshare/pkg/utils"

	_ "closetshare/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(lc fx.Lifecycle, userRepo user.UserRepository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := userRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure user indexes: %v", err)
				}
			}()
			return nil
		},
	})
}

// @title           Closet Share API
// @version         1.0
// @description     Clothing lending service: closets, contracts, groups and friends.

// @host            localhost:8000
// @BasePath        /api
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			user.NewUserRepository,
			group.NewGroupRepository,
			closet.NewClothingItemRepository,
			contract.NewContractRepository,
			store.NewStoreRepository,
			friend.NewFriendRepository,
			notification.NewNotificationRepository,

			// Initialize Service
			user.NewUserService,
			auth.NewAuthService,
			group.NewGroupService,
			closet.NewClothingItemService,
			contract.NewContractService,
			store.NewStoreService,
			friend.NewFriendService,
			notification.NewHub,
			notification.NewNotificationService,

			// Initialize Controller
			auth.NewAuthController,
			user.NewUserController,
			group.NewGroupController,
			closet.NewClothingItemController,
			contract.NewContractController,
			store.NewStoreController,
			friend.NewFriendController,
			notification.NewNotificationController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(group.NewGroupApi),
			AsRoute(closet.NewClothingItemApi),
			AsRoute(contract.NewContractApi),
			AsRoute(store.NewStoreApi),
			AsRoute(friend.NewFriendApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			overdue.NewOverdueService,
			InitializeIndexes,
		),
	)

	app.Run()
}
