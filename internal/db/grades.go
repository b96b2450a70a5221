package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lingvodom/school-api/internal/models"
)

func AddGrade(ctx context.Context, database *sql.DB, g models.Grade) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO grades (group_id, user_id, grade, comment)
		VALUES ($1, $2, $3, $4) RETURNING id
	`, g.GroupID, g.UserID, g.Grade, g.Comment).Scan(&id)
	return id, err
}

func GetGradeByID(ctx context.Context, database *sql.DB, id int64) (*models.Grade, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, group_id, user_id, grade, comment, assigned_at FROM grades WHERE id = $1
	`, id)
	var g models.Grade
	if err := row.Scan(&g.ID, &g.GroupID, &g.UserID, &g.Grade, &g.Comment, &g.AssignedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func UpdateGrade(ctx context.Context, database *sql.DB, id int64, upd models.GradeUpdate) (int64, error) {
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
	if upd.Grade != nil {
		add("grade", *upd.Grade)
	}
	if upd.Comment != nil {
		add("comment", *upd.Comment)
	}
	if set == "" {
		var exists bool
		err := database.QueryRowContext(ctx, `SELECT TRUE FROM grades WHERE id = $1`, id).Scan(&exists)
		if err == sql.ErrNoRows {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		return 1, nil
	}
	args = append(args, id)
	res, err := database.ExecContext(ctx, fmt.Sprintf(`UPDATE grades SET %s WHERE id = $%d`, set, idx), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func DeleteGrade(ctx context.Context, database *sql.DB, id int64) (int64, error) {
	res, err := database.ExecContext(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetStudentMarks — все оценки ученика, новые сверху, вместе с группой,
// курсом и преподавателем.
func GetStudentMarks(ctx context.Context, database *sql.DB, userID int64) ([]models.Grade, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT gr.id, gr.group_id, gr.user_id, gr.grade, gr.comment, gr.assigned_at,
		       g.group_name, c.name, trim(t.first_name || ' ' || t.last_name)
		FROM grades gr
		JOIN course_groups g ON g.id = gr.group_id
		JOIN courses c ON c.id = g.course_id
		JOIN users t ON t.id = g.teacher_id
		WHERE gr.user_id = $1
		ORDER BY gr.assigned_at DESC, gr.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.Grade{}
	for rows.Next() {
		var g models.Grade
		if err := rows.Scan(&g.ID, &g.GroupID, &g.UserID, &g.Grade, &g.Comment, &g.AssignedAt,
			&g.GroupName, &g.CourseName, &g.TeacherName); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetAllMarks — полная выборка для выгрузки: оценки со всеми связями,
// сгруппированы по группе, внутри группы новые сверху.
func GetAllMarks(ctx context.Context, database *sql.DB) ([]models.Grade, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT gr.id, gr.group_id, gr.user_id, gr.grade, gr.comment, gr.assigned_at,
		       g.group_name, c.name,
		       trim(t.first_name || ' ' || t.last_name),
		       trim(u.first_name || ' ' || u.last_name)
		FROM grades gr
		JOIN course_groups g ON g.id = gr.group_id
		JOIN courses c ON c.id = g.course_id
		JOIN users t ON t.id = g.teacher_id
		JOIN users u ON u.id = gr.user_id
		ORDER BY gr.group_id, gr.assigned_at DESC, gr.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.Grade{}
	for rows.Next() {
		var g models.Grade
		if err := rows.Scan(&g.ID, &g.GroupID, &g.UserID, &g.Grade, &g.Comment, &g.AssignedAt,
			&g.GroupName, &g.CourseName, &g.TeacherName, &g.StudentName); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetGroupMarks — все оценки группы вместе с именем ученика.
func GetGroupMarks(ctx context.Context, database *sql.DB, groupID int64) ([]models.Grade, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT gr.id, gr.group_id, gr.user_id, gr.grade, gr.comment, gr.assigned_at,
		       trim(u.first_name || ' ' || u.last_name)
		FROM grades gr
		JOIN users u ON u.id = gr.user_id
		WHERE gr.group_id = $1
		ORDER BY gr.assigned_at DESC, gr.id DESC
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.Grade{}
	for rows.Next() {
		var g models.Grade
		if err := rows.Scan(&g.ID, &g.GroupID, &g.UserID, &g.Grade, &g.Comment, &g.AssignedAt,
			&g.StudentName); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
