package db

import (
	"context"
	"database/sql"

	"github.com/lingvodom/school-api/internal/models"
)

func CreateLanguage(ctx context.Context, database *sql.DB, l models.Language) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO languages (name, rus_name) VALUES ($1, $2) RETURNING id
	`, l.Name, l.RusName).Scan(&id)
	return id, err
}

func GetLanguageByID(ctx context.Context, database *sql.DB, id int64) (*models.Language, error) {
	row := database.QueryRowContext(ctx, `SELECT id, name, rus_name FROM languages WHERE id = $1`, id)
	var l models.Language
	if err := row.Scan(&l.ID, &l.Name, &l.RusName); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func ListLanguages(ctx context.Context, database *sql.DB) ([]models.Language, error) {
	rows, err := database.QueryContext(ctx, `SELECT id, name, rus_name FROM languages ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.Language{}
	for rows.Next() {
		var l models.Language
		if err := rows.Scan(&l.ID, &l.Name, &l.RusName); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func UpdateLanguage(ctx context.Context, database *sql.DB, l models.Language) (int64, error) {
	res, err := database.ExecContext(ctx, `
		UPDATE languages SET name = $1, rus_name = $2 WHERE id = $3
	`, l.Name, l.RusName, l.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func DeleteLanguage(ctx context.Context, database *sql.DB, id int64) (int64, error) {
	res, err := database.ExecContext(ctx, `DELETE FROM languages WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
