package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lingvodom/school-api/internal/app"
	"github.com/lingvodom/school-api/internal/config"
	"github.com/lingvodom/school-api/internal/db"
	"github.com/lingvodom/school-api/internal/logging"
	"github.com/lingvodom/school-api/internal/observability"
)

var version = "dev" // подставляется при сборке через -ldflags

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Конфигурация: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Логгер: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, version)
	if err != nil {
		lg.Sugar.Warnw("sentry init", "err", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Sugar.Fatalw("db open", "err", err)
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(database); err != nil {
		lg.Sugar.Fatalw("migrate", "err", err)
	}

	srv := app.NewServer(cfg, database, lg.Sugar)
	srv.Start(ctx)
	lg.Sugar.Infow("server started", "addr", cfg.HTTPAddr, "env", cfg.Env)

	<-ctx.Done()
	lg.Sugar.Infow("shutting down")
}
