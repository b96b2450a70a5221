package db

import (
	"context"
	"database/sql"

	"github.com/lingvodom/school-api/internal/models"
)

func CreateAgeGroup(ctx context.Context, database *sql.DB, g models.AgeGroup) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO age_groups (name, min_age, max_age) VALUES ($1, $2, $3) RETURNING id
	`, g.Name, g.MinAge, g.MaxAge).Scan(&id)
	return id, err
}

func GetAgeGroupByID(ctx context.Context, database *sql.DB, id int64) (*models.AgeGroup, error) {
	row := database.QueryRowContext(ctx, `SELECT id, name, min_age, max_age FROM age_groups WHERE id = $1`, id)
	var g models.AgeGroup
	if err := row.Scan(&g.ID, &g.Name, &g.MinAge, &g.MaxAge); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func ListAgeGroups(ctx context.Context, database *sql.DB) ([]models.AgeGroup, error) {
	rows, err := database.QueryContext(ctx, `SELECT id, name, min_age, max_age FROM age_groups ORDER BY min_age`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.AgeGroup{}
	for rows.Next() {
		var g models.AgeGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.MinAge, &g.MaxAge); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func UpdateAgeGroup(ctx context.Context, database *sql.DB, g models.AgeGroup) (int64, error) {
	res, err := database.ExecContext(ctx, `
		UPDATE age_groups SET name = $1, min_age = $2, max_age = $3 WHERE id = $4
	`, g.Name, g.MinAge, g.MaxAge, g.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func DeleteAgeGroup(ctx context.Context, database *sql.DB, id int64) (int64, error) {
	res, err := database.ExecContext(ctx, `DELETE FROM age_groups WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
