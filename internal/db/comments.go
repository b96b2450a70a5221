package db

import (
	"context"
	"database/sql"

	"github.com/lingvodom/school-api/internal/models"
)

func AddSchoolComment(ctx context.Context, database *sql.DB, userID int64, text string) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO school_comments (user_id, comment) VALUES ($1, $2) RETURNING id
	`, userID, text).Scan(&id)
	return id, err
}

func VerifySchoolComment(ctx context.Context, database *sql.DB, id int64) (int64, error) {
	res, err := database.ExecContext(ctx, `
		UPDATE school_comments SET is_verified = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func DeleteSchoolComment(ctx context.Context, database *sql.DB, id int64) (int64, error) {
	res, err := database.ExecContext(ctx, `DELETE FROM school_comments WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListSchoolComments — verified: nil — все, иначе фильтр по статусу модерации.
// Автор подтягивается сразу (имя нужно и в публичном, и в админском списке).
func ListSchoolComments(ctx context.Context, database *sql.DB, verified *bool) ([]models.SchoolComment, error) {
	q := `
		SELECT sc.id, sc.user_id, sc.comment, sc.is_verified, sc.added_at, u.first_name, u.last_name
		FROM school_comments sc
		JOIN users u ON u.id = sc.user_id
	`
	args := []any{}
	if verified != nil {
		q += ` WHERE sc.is_verified = $1`
		args = append(args, *verified)
	}
	q += ` ORDER BY sc.added_at DESC`

	rows, err := database.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.SchoolComment{}
	for rows.Next() {
		var c models.SchoolComment
		if err := rows.Scan(&c.ID, &c.UserID, &c.Comment, &c.IsVerified, &c.AddedAt, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
