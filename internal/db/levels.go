package db

import (
	"context"
	"database/sql"

	"github.com/lingvodom/school-api/internal/models"
)

func CreateLevel(ctx context.Context, database *sql.DB, l models.Level) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO levels (name, description) VALUES ($1, $2) RETURNING id
	`, l.Name, l.Description).Scan(&id)
	return id, err
}

func GetLevelByID(ctx context.Context, database *sql.DB, id int64) (*models.Level, error) {
	row := database.QueryRowContext(ctx, `SELECT id, name, description FROM levels WHERE id = $1`, id)
	var l models.Level
	if err := row.Scan(&l.ID, &l.Name, &l.Description); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func ListLevels(ctx context.Context, database *sql.DB) ([]models.Level, error) {
	rows, err := database.QueryContext(ctx, `SELECT id, name, description FROM levels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.Level{}
	for rows.Next() {
		var l models.Level
		if err := rows.Scan(&l.ID, &l.Name, &l.Description); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func UpdateLevel(ctx context.Context, database *sql.DB, l models.Level) (int64, error) {
	res, err := database.ExecContext(ctx, `
		UPDATE levels SET name = $1, description = $2 WHERE id = $3
	`, l.Name, l.Description, l.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func DeleteLevel(ctx context.Context, database *sql.DB, id int64) (int64, error) {
	res, err := database.ExecContext(ctx, `DELETE FROM levels WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
