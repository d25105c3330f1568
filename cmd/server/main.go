package main

import (
	"context"
	"database/sql"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/migrate"

	careers "github.com/hirepage/careers"
	"github.com/hirepage/careers/config"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("careers"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := gconfig.New(&config.BaseConfig{}).
		WithLogger(lgr.GetLogger("config"))

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		lgr.Error("config load failed", "error", err)
		os.Exit(1)
	}

	app, db, err := buildApp(ctx, cfg.Raw(), lgr)
	if err != nil {
		lgr.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	addr := cfg.Raw().GetServer().GetAddress()
	go func() {
		if err := app.Listen(addr); err != nil {
			lgr.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	sig := WaitExitSignal()
	lgr.Info("shutting down", "signal", sig.String())

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		lgr.Error("shutdown error", "error", err)
	}
}

func buildApp(ctx context.Context, cfg *config.BaseConfig, lgr *glog.BaseLogger) (*fiber.App, *bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.GetPersistence().GetDSN())
	if err != nil {
		return nil, nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	repo := careers.NewRepositoryManager(db)
	repo.MustValidate()

	authCfg := cfg.GetAuth()
	tokens := careers.NewTokenService(
		[]byte(authCfg.GetSigningKey()),
		authCfg.GetTokenExpiration(),
		authCfg.GetIssuer(),
		jwt.ClaimStrings(authCfg.GetAudience()),
		lgr.GetLogger("tokens"),
	)

	auther := careers.NewAuthenticator(repo, tokens).
		WithLogger(lgr.GetLogger("auth"))

	guard := careers.NewOwnershipGuard(db).
		WithLogger(lgr.GetLogger("guard"))

	store := careers.NewTenantStore(repo, guard).
		WithLogger(lgr.GetLogger("store"))

	uploadsDir := cfg.GetUploads().GetDir()
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		db.Close()
		return nil, nil, err
	}
	uploader := &careers.Uploader{
		Dir:      uploadsDir,
		MaxBytes: cfg.GetUploads().GetMaxBytes(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Careers Page Builder API",
		DisableStartupMessage: cfg.Production(),
	})

	app.Static("/uploads", uploadsDir)

	careers.RegisterRoutes(app, careers.RouterConfig{
		Auther:     auther,
		Store:      store,
		Tokens:     tokens,
		Uploader:   uploader,
		Logger:     lgr.GetLogger("http"),
		ContextKey: authCfg.GetContextKey(),
		Production: cfg.Production(),
	})

	return app, db, nil
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	migrationsFS, err := fs.Sub(careers.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	migrations := migrate.NewMigrations()
	if err := migrations.Discover(migrationsFS); err != nil {
		return err
	}

	migrator := migrate.NewMigrator(db, migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}

	if _, err := migrator.Migrate(ctx); err != nil {
		return err
	}
	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
