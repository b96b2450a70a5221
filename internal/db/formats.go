package db

import (
	"context"
	"database/sql"

	"github.com/lingvodom/school-api/internal/models"
)

func CreateCourseFormat(ctx context.Context, database *sql.DB, name string) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO course_formats (name) VALUES ($1) RETURNING id
	`, name).Scan(&id)
	return id, err
}

func GetCourseFormatByID(ctx context.Context, database *sql.DB, id int64) (*models.CourseFormat, error) {
	row := database.QueryRowContext(ctx, `SELECT id, name FROM course_formats WHERE id = $1`, id)
	var f models.CourseFormat
	if err := row.Scan(&f.ID, &f.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func ListCourseFormats(ctx context.Context, database *sql.DB) ([]models.CourseFormat, error) {
	rows, err := database.QueryContext(ctx, `SELECT id, name FROM course_formats ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.CourseFormat{}
	for rows.Next() {
		var f models.CourseFormat
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func UpdateCourseFormat(ctx context.Context, database *sql.DB, id int64, name string) (int64, error) {
	res, err := database.ExecContext(ctx, `UPDATE course_formats SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func DeleteCourseFormat(ctx context.Context, database *sql.DB, id int64) (int64, error) {
	res, err := database.ExecContext(ctx, `DELETE FROM course_formats WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
