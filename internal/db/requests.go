package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lingvodom/school-api/internal/models"
)

// CreateCourseRequest — вставка заявки. Дубликат пары (user, course)
// отсекается уникальным constraint-ом, а не предварительной проверкой.
func CreateCourseRequest(ctx context.Context, database *sql.DB, userID, courseID int64) (*models.CourseRequest, error) {
	row := database.QueryRowContext(ctx, `
		INSERT INTO course_requests (user_id, course_id, status, is_processed, is_archived)
		VALUES ($1, $2, $3, FALSE, FALSE)
		RETURNING id, user_id, course_id, status, is_processed, is_archived, created_at
	`, userID, courseID, models.RequestPending)
	return scanRequest(row)
}

func scanRequest(row interface{ Scan(...any) error }) (*models.CourseRequest, error) {
	var r models.CourseRequest
	err := row.Scan(&r.ID, &r.UserID, &r.CourseID, &r.Status, &r.IsProcessed, &r.IsArchived, &r.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func GetCourseRequestByID(ctx context.Context, database *sql.DB, id int64) (*models.CourseRequest, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, user_id, course_id, status, is_processed, is_archived, created_at
		FROM course_requests WHERE id = $1
	`, id)
	return scanRequest(row)
}

// GetDetailedCourseRequest — заявка вместе с пользователем и курсом+языком
// (для админской карточки, одним запросом).
func GetDetailedCourseRequest(ctx context.Context, database *sql.DB, id int64) (*models.CourseRequest, error) {
	row := database.QueryRowContext(ctx, `
		SELECT r.id, r.user_id, r.course_id, r.status, r.is_processed, r.is_archived, r.created_at,
		       trim(u.first_name || ' ' || u.last_name), u.email, c.name, l.name
		FROM course_requests r
		JOIN users u ON u.id = r.user_id
		JOIN courses c ON c.id = r.course_id
		JOIN languages l ON l.id = c.language_id
		WHERE r.id = $1
	`, id)
	var r models.CourseRequest
	err := row.Scan(&r.ID, &r.UserID, &r.CourseID, &r.Status, &r.IsProcessed, &r.IsArchived, &r.CreatedAt,
		&r.UserName, &r.UserEmail, &r.CourseName, &r.LanguageName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// UpdateCourseRequest — независимое частичное обновление трёх полей.
func UpdateCourseRequest(ctx context.Context, database *sql.DB, id int64, upd models.RequestUpdate) (int64, error) {
	set := ""
	args := []any{}
	idx := 1
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", col, idx)
		args = append(args, v)
		idx++
	}
	if upd.Status != nil {
		add("status", string(*upd.Status))
	}
	if upd.IsProcessed != nil {
		add("is_processed", *upd.IsProcessed)
	}
	if upd.IsArchived != nil {
		add("is_archived", *upd.IsArchived)
	}
	if set == "" {
		var exists bool
		err := database.QueryRowContext(ctx, `SELECT TRUE FROM course_requests WHERE id = $1`, id).Scan(&exists)
		if err == sql.ErrNoRows {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		return 1, nil
	}
	args = append(args, id)
	res, err := database.ExecContext(ctx, fmt.Sprintf(`UPDATE course_requests SET %s WHERE id = $%d`, set, idx), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func DeleteCourseRequest(ctx context.Context, database *sql.DB, id int64) (int64, error) {
	res, err := database.ExecContext(ctx, `DELETE FROM course_requests WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func ListCourseRequests(ctx context.Context, database *sql.DB) ([]models.CourseRequest, error) {
	return queryRequests(ctx, database, `
		SELECT id, user_id, course_id, status, is_processed, is_archived, created_at
		FROM course_requests ORDER BY created_at DESC
	`)
}

func ListCourseRequestsByUser(ctx context.Context, database *sql.DB, userID int64) ([]models.CourseRequest, error) {
	return queryRequests(ctx, database, `
		SELECT id, user_id, course_id, status, is_processed, is_archived, created_at
		FROM course_requests WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
}

func queryRequests(ctx context.Context, database *sql.DB, q string, args ...any) ([]models.CourseRequest, error) {
	rows, err := database.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.CourseRequest{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}
