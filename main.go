package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/c14220110/poliklinik-analytics/config"
	"github.com/c14220110/poliklinik-analytics/internal/common/middlewares"
	commonModels "github.com/c14220110/poliklinik-analytics/internal/common/models"
	dokterServices "github.com/c14220110/poliklinik-analytics/internal/dokter/services"
	rentServices "github.com/c14220110/poliklinik-analytics/internal/rentabilite/services"
	"github.com/c14220110/poliklinik-analytics/internal/routes"
	"github.com/c14220110/poliklinik-analytics/internal/simulation/store"
	"github.com/c14220110/poliklinik-analytics/pkg/logger"
	"github.com/c14220110/poliklinik-analytics/pkg/storage/mariadb"
	redisStorage "github.com/c14220110/poliklinik-analytics/pkg/storage/redis"
	"github.com/c14220110/poliklinik-analytics/pkg/storage/sqlite"
	"github.com/c14220110/poliklinik-analytics/pkg/upstream"
	"github.com/c14220110/poliklinik-analytics/pkg/utils"
	"github.com/c14220110/poliklinik-analytics/ws"
)

func main() {
	cfg := config.LoadConfig()

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	procedures, doctors, err := buildProviders(cfg, zl)
	if err != nil {
		zl.Fatal("init aggregate providers", zap.Error(err))
	}
	st, err := buildStore(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("init simulation store", zap.Error(err))
	}

	hub := ws.NewHub(zl)
	go hub.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = utils.JSONSerializer{}
	e.Use(middleware.Recover())
	e.Use(middlewares.RequestLogger(zl))
	e.Use(middleware.CORS())
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, commonModels.NewResponse(http.StatusOK, "ok", nil))
	})

	routes.Init(e, routes.Dependencies{
		Procedures: procedures,
		Doctors:    doctors,
		Store:      st,
		Hub:        hub,
		JWTSecret:  cfg.JWTSecret,
		Logger:     zl,
	})

	go func() {
		zl.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("provider", cfg.ProviderBackend),
			zap.String("store", cfg.StoreBackend))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}

func buildProviders(cfg *config.Config, zl *zap.Logger) (rentServices.ProcedureAggregateProvider, dokterServices.DoctorAggregateProvider, error) {
	switch cfg.ProviderBackend {
	case "mariadb":
		db, err := mariadb.Connect(cfg, zl)
		if err != nil {
			return nil, nil, err
		}
		return rentServices.NewMariaDBProcedureProvider(db, zl), dokterServices.NewMariaDBDoctorProvider(db, zl), nil
	case "remote":
		if cfg.UpstreamURL == "" {
			return nil, nil, errors.New("UPSTREAM_URL is required for the remote provider")
		}
		client := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamToken, zl)
		return rentServices.NewRemoteProcedureProvider(client, zl), dokterServices.NewRemoteDoctorProvider(client, zl), nil
	default:
		return nil, nil, fmt.Errorf("unknown PROVIDER_BACKEND %q", cfg.ProviderBackend)
	}
}

func buildStore(ctx context.Context, cfg *config.Config, zl *zap.Logger) (store.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		client := redisStorage.NewRedisClient(cfg)
		if err := redisStorage.Ping(ctx, client); err != nil {
			return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		return store.NewRedisStore(client, cfg.SimulationKey, zl), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		s := store.NewSQLiteStore(db, cfg.SimulationKey, zl)
		if err := s.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
