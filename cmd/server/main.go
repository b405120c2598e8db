// @title         Employee Management API
// @version       1.0
// @description   Employee directory with role-based access: JWT authentication, scoped profile management and dashboard statistics.
// @BasePath      /api
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Access token. Both "Bearer <JWT>" and a bare "<JWT>" are accepted.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"

	_ "github.com/PriyanshiDabral/Employee-Management/docs"

	// internal imports
	"github.com/PriyanshiDabral/Employee-Management/api/http"
	"github.com/PriyanshiDabral/Employee-Management/api/http/handlers"
	"github.com/PriyanshiDabral/Employee-Management/api/http/presenter"
	"github.com/PriyanshiDabral/Employee-Management/pkg/auth"
	"github.com/PriyanshiDabral/Employee-Management/pkg/config"
	"github.com/PriyanshiDabral/Employee-Management/pkg/employee"
	"github.com/PriyanshiDabral/Employee-Management/pkg/health"
	"github.com/PriyanshiDabral/Employee-Management/pkg/health/checkers"
	pgrepo "github.com/PriyanshiDabral/Employee-Management/pkg/repository/postgres"
	"github.com/PriyanshiDabral/Employee-Management/pkg/security/jwt"
	"github.com/PriyanshiDabral/Employee-Management/pkg/security/password"
	"github.com/PriyanshiDabral/Employee-Management/pkg/security/revocation"
	"github.com/PriyanshiDabral/Employee-Management/pkg/seed"
	"github.com/PriyanshiDabral/Employee-Management/pkg/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration from env/.env and the optional CONFIG_PATH file
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Connect to PostgreSQL and bring the schema up to date
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, "up"); err != nil {
		log.Fatalf("postgres migrate: %v", err)
	}

	// Token revocation is optional: without Redis, logout only discards the token client-side
	var revoker auth.TokenRevoker = revocation.Noop{}
	readinessCheckers := []health.Checker{checkers.NewPostgresChecker(pool)}
	if cfg.RedisURL != "" {
		client, err := revocation.Open(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		defer client.Close()
		revoker = revocation.NewRedisStore(client)
		readinessCheckers = append(readinessCheckers, checkers.NewRedisChecker(client))
	} else {
		log.Printf("REDIS_URL not set: token revocation disabled")
	}

	// Wire dependencies (Clean Architecture)
	txManager := postgres.NewTransactionManager(pool)
	userRepo := pgrepo.NewUserRepository(pool)
	employeeRepo := pgrepo.NewEmployeeRepository(pool)

	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	verifier := jwt.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)

	authUC, err := auth.NewAuthService(auth.Deps{
		Users:     userRepo,
		Employees: employeeRepo,
		Tx:        txManager,
		Hasher:    password.NewHasher(cfg.BcryptCost),
		Tokens:    jwtGen,
		Revoker:   revoker,
	})
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}
	employeeUC := employee.NewService(employeeRepo, txManager)

	if cfg.Seed.Enabled {
		fixtures, err := seed.Default()
		if err != nil {
			log.Fatalf("seed fixtures: %v", err)
		}
		if _, err := seed.Run(ctx, authUC, employeeUC, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, fixtures); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      "employee-management",
		ErrorHandler: presenter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Register routes
	http.Register(app, http.Handlers{
		Auth:         handlers.NewAuthHandler(authUC),
		Employees:    handlers.NewEmployeeHandler(employeeUC),
		Health:       handlers.NewHealthHandler(health.NewService(readinessCheckers...)),
		Authenticate: jwt.NewAuthMiddleware(verifier, revoker),
		RequireAdmin: jwt.RequireAdmin(),
	})

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Start server
	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	case <-ctx.Done():
		log.Printf("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}
