package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/lingvodom/school-api/internal/models"
)

// CreateCourse — курс и его связи с уровнями пишутся в одной транзакции:
// частично созданный курс без уровней невозможен.
func CreateCourse(ctx context.Context, database *sql.DB, nc models.NewCourse) (int64, error) {
	tx, err := database.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO courses (name, description, group_size, intensity, price, language_id, format_id, age_group_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, nc.Name, nc.Description, nc.GroupSize, nc.Intensity, nc.Price,
		nc.LanguageID, nc.FormatID, nc.AgeGroupID, nc.IsActive).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err := insertCourseLevels(ctx, tx, id, nc.Levels); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func insertCourseLevels(ctx context.Context, tx *sql.Tx, courseID int64, levels []int64) error {
	if len(levels) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO course_levels (course_id, level_id, level_type) VALUES ($1, $2, $3)
	`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, lvl := range levels {
		if _, err := stmt.ExecContext(ctx, courseID, lvl, models.LevelTypeStart); err != nil {
			return err
		}
	}
	return nil
}

// UpdateCourse — частичное обновление; upd.Levels != nil означает полную
// замену набора уровней (delete-all + insert) в той же транзакции.
// Возвращает число затронутых строк courses (0 — курса нет).
func UpdateCourse(ctx context.Context, database *sql.DB, id int64, upd models.CourseUpdate) (int64, error) {
	tx, err := database.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

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
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.GroupSize != nil {
		add("group_size", *upd.GroupSize)
	}
	if upd.Intensity != nil {
		add("intensity", *upd.Intensity)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.LanguageID != nil {
		add("language_id", *upd.LanguageID)
	}
	if upd.FormatID != nil {
		add("format_id", *upd.FormatID)
	}
	if upd.AgeGroupID != nil {
		add("age_group_id", *upd.AgeGroupID)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}

	var affected int64
	if set != "" {
		args = append(args, id)
		res, err := tx.ExecContext(ctx, fmt.Sprintf(`UPDATE courses SET %s WHERE id = $%d`, set, idx), args...)
		if err != nil {
			return 0, err
		}
		affected, _ = res.RowsAffected()
	} else {
		var exists bool
		err := tx.QueryRowContext(ctx, `SELECT TRUE FROM courses WHERE id = $1`, id).Scan(&exists)
		if err != nil && err != sql.ErrNoRows {
			return 0, err
		}
		if exists {
			affected = 1
		}
	}
	if affected == 0 {
		return 0, nil
	}

	if upd.Levels != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM course_levels WHERE course_id = $1`, id); err != nil {
			return 0, err
		}
		if err := insertCourseLevels(ctx, tx, id, upd.Levels); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return affected, nil
}

const courseColumns = `c.id, c.name, c.description, c.group_size, c.intensity, c.price,
	c.language_id, c.format_id, c.age_group_id, c.is_active,
	l.name, f.name, a.name`

// GetCourseByID — курс со связанными справочниками и набором уровней
// одним запросом (без N+1).
func GetCourseByID(ctx context.Context, database *sql.DB, id int64) (*models.Course, error) {
	row := database.QueryRowContext(ctx, `
		SELECT `+courseColumns+`,
		       COALESCE((SELECT array_agg(cl.level_id ORDER BY cl.level_id) FROM course_levels cl WHERE cl.course_id = c.id), '{}')
		FROM courses c
		JOIN languages l ON l.id = c.language_id
		JOIN course_formats f ON f.id = c.format_id
		JOIN age_groups a ON a.id = c.age_group_id
		WHERE c.id = $1
	`, id)

	var c models.Course
	var levelIDs pq.Int64Array
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.GroupSize, &c.Intensity, &c.Price,
		&c.LanguageID, &c.FormatID, &c.AgeGroupID, &c.IsActive,
		&c.LanguageName, &c.FormatName, &c.AgeGroupName, &levelIDs)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	c.LevelIDs = levelIDs
	return &c, nil
}

func ListCourses(ctx context.Context, database *sql.DB) ([]models.Course, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT `+courseColumns+`,
		       COALESCE((SELECT array_agg(cl.level_id ORDER BY cl.level_id) FROM course_levels cl WHERE cl.course_id = c.id), '{}')
		FROM courses c
		JOIN languages l ON l.id = c.language_id
		JOIN course_formats f ON f.id = c.format_id
		JOIN age_groups a ON a.id = c.age_group_id
		ORDER BY c.name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.Course{}
	for rows.Next() {
		var c models.Course
		var levelIDs pq.Int64Array
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.GroupSize, &c.Intensity, &c.Price,
			&c.LanguageID, &c.FormatID, &c.AgeGroupID, &c.IsActive,
			&c.LanguageName, &c.FormatName, &c.AgeGroupName, &levelIDs); err != nil {
			return nil, err
		}
		c.LevelIDs = levelIDs
		out = append(out, c)
	}
	return out, rows.Err()
}

func DeleteCourse(ctx context.Context, database *sql.DB, id int64) (int64, error) {
	res, err := database.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetCourseLevelIDs — текущий набор уровней курса.
func GetCourseLevelIDs(ctx context.Context, database *sql.DB, courseID int64) ([]int64, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT level_id FROM course_levels WHERE course_id = $1 ORDER BY level_id
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// GetUserCourses — отличные друг от друга пары (курс, группа), достижимые
// через членство пользователя в группах.
func GetUserCourses(ctx context.Context, database *sql.DB, userID int64) ([]models.UserCourse, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT DISTINCT c.id, c.name, g.id, g.group_name
		FROM group_users gu
		JOIN course_groups g ON g.id = gu.group_id
		JOIN courses c ON c.id = g.course_id
		WHERE gu.user_id = $1
		ORDER BY c.name, g.group_name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.UserCourse{}
	for rows.Next() {
		var uc models.UserCourse
		if err := rows.Scan(&uc.CourseID, &uc.CourseName, &uc.GroupID, &uc.GroupName); err != nil {
			return nil, err
		}
		out = append(out, uc)
	}
	return out, rows.Err()
}
