package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studiokita/ops-dashboard/internal"
	"github.com/studiokita/ops-dashboard/internal/auth"
	authPostgres "github.com/studiokita/ops-dashboard/internal/auth/postgres"
	"github.com/studiokita/ops-dashboard/internal/core/events"
	"github.com/studiokita/ops-dashboard/internal/expense"
	expensePostgres "github.com/studiokita/ops-dashboard/internal/expense/postgres"
	"github.com/studiokita/ops-dashboard/internal/notification"
	"github.com/studiokita/ops-dashboard/internal/permission"
	permissionPostgres "github.com/studiokita/ops-dashboard/internal/permission/postgres"
	"github.com/studiokita/ops-dashboard/internal/role"
	rolePostgres "github.com/studiokita/ops-dashboard/internal/role/postgres"
	"github.com/studiokita/ops-dashboard/internal/transport"
	"github.com/studiokita/ops-dashboard/internal/transport/rest"
	"github.com/studiokita/ops-dashboard/internal/transport/swagger"
	"github.com/studiokita/ops-dashboard/internal/user"
	userPostgres "github.com/studiokita/ops-dashboard/internal/user/postgres"
	"github.com/studiokita/ops-dashboard/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
	Hub    *notification.Hub
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	go deps.Hub.Run()

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := internal.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) error {
	lg := deps.Logger
	baseHandler := transport.NewBaseHandler(lg)

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		return err
	}

	bus := events.NewEventBus(lg)
	notification.SubscribeRoleEvents(bus, deps.Hub)

	tokenGen := auth.NewJWTTokenGenerator(
		deps.Config.Security.AccessTokenSecret,
		deps.Config.Security.RefreshTokenSecret,
		deps.Config.Security.AccessTokenDuration,
		deps.Config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(deps.GormDB), tokenGen)
	authHandler := auth.NewHandler(baseHandler, authService)
	rbac := auth.NewRBACAuthorization(auth.NewPermissionChecker(), lg)

	resolver := permission.DefaultResolver()
	permissionService := permission.NewService(permissionPostgres.NewPermissionRepository(deps.GormDB), resolver, lg)
	permissionHandler := permission.NewHandler(baseHandler, permissionService)

	roleService := role.NewService(rolePostgres.NewRoleRepository(deps.GormDB), bus, lg)
	roleHandler := role.NewHandler(baseHandler, roleService)

	userService := user.NewService(userPostgres.NewUserRepository(deps.GormDB), roleService, lg)
	userHandler := user.NewHandler(baseHandler, userService)

	expenseService := expense.NewService(expensePostgres.NewExpenseRepository(deps.GormDB), auth.NewPermissionChecker(), lg)
	expenseHandler := expense.NewHandler(baseHandler, expenseService)

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		authHandler,
		authService,
		rbac,
		userHandler,
		permissionHandler,
		roleHandler,
		expenseHandler,
		deps.Hub,
		lg,
	)

	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
		Hub:    notification.NewHub(lg),
	}, nil
}

// initDB opens the pgx connection pool shared by sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
