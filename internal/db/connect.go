package db

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open открывает пул соединений и дожидается готовности БД.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	database, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	database.SetMaxOpenConns(10)
	database.SetConnMaxIdleTime(5 * time.Minute)

	// ждём готовности: пауза растёт с каждой попыткой
	var pingErr error
	for attempt := 1; attempt <= 30; attempt++ {
		pingErr = database.PingContext(ctx)
		if pingErr == nil {
			return database, nil
		}
		select {
		case <-ctx.Done():
			_ = database.Close()
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}
	_ = database.Close()
	return nil, pingErr
}
