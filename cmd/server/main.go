package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/changhyeonkim/sales-crm/internal/bootstrap"
	"github.com/changhyeonkim/sales-crm/internal/config"
	"github.com/changhyeonkim/sales-crm/internal/router"
	"github.com/changhyeonkim/sales-crm/internal/shared/database"
	"github.com/changhyeonkim/sales-crm/internal/shared/logger"
	"github.com/changhyeonkim/sales-crm/internal/shared/validator"
)

type flags struct {
	env         string
	migrateOnly bool
}

func main() {
	f := parseFlags()

	// Initialize logger
	logger.Setup(f.env)
	slog.Info("서버 초기화 시작", "env", f.env)

	// Stop on SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f); err != nil {
		slog.Error("서버 실행 실패", "error", err)
		os.Exit(1)
	}

	slog.Info("서버 종료 완료", "env", f.env)
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.env, "env", "local", "Environment (local|dev|prod)")
	flag.BoolVar(&f.migrateOnly, "migrate-only", false, "Create or update the schema, then exit")
	flag.Parse()
	return f
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load(f.env)
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}
	slog.Info("환경 변수 로드 성공", "db_path", cfg.Database.Path)

	if f.migrateOnly {
		cfg.Database.IsAutoMigrate = true
	}

	// Open the SQLite store (schema is migrated on open when DB_AUTO_MIGRATE=true)
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("데이터베이스 종료 실패", "error", err)
		}
	}()

	if f.migrateOnly {
		slog.Info("마이그레이션만 수행하고 종료합니다")
		return nil
	}

	srv, err := setupServer(cfg, db)
	if err != nil {
		return err
	}

	return serve(ctx, srv, cfg.Server.GracefulTimeout)
}

func setupServer(cfg *config.Config, db *database.DB) (*bootstrap.Server, error) {
	// Register common validators (birthday, loginid) before any route binds
	if err := validator.RegisterAll(); err != nil {
		return nil, fmt.Errorf("공통 Validator 등록 실패: %w", err)
	}

	engine := bootstrap.NewBootstrap(cfg).SetupEngine()
	router.Setup(engine, cfg, db)

	slog.Info("서버 설정 완료",
		"env", cfg.App.Env,
		"routes", len(engine.Routes()),
	)

	return bootstrap.New(cfg, engine), nil
}

// serve runs the server until ctx is cancelled, then drains in-flight requests
func serve(ctx context.Context, srv *bootstrap.Server, gracefulTimeout time.Duration) error {
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("서버 오류: %w", err)
		}
		return nil

	case <-ctx.Done():
		slog.Info("종료 신호 수신됨", "addr", srv.Addr())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("서버 강제 종료: %w", err)
		}
		return nil
	}
}
