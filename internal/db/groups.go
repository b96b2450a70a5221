package db

import (
	"context"
	"database/sql"

	"github.com/lingvodom/school-api/internal/models"
)

func CreateCourseGroup(ctx context.Context, database *sql.DB, g models.CourseGroup) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO course_groups (course_id, teacher_id, group_name)
		VALUES ($1, $2, $3) RETURNING id
	`, g.CourseID, g.TeacherID, g.GroupName).Scan(&id)
	return id, err
}

func GetCourseGroupByID(ctx context.Context, database *sql.DB, id int64) (*models.CourseGroup, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, course_id, teacher_id, group_name FROM course_groups WHERE id = $1
	`, id)
	var g models.CourseGroup
	if err := row.Scan(&g.ID, &g.CourseID, &g.TeacherID, &g.GroupName); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// ListCourseGroups — группы с названием курса и именем преподавателя.
func ListCourseGroups(ctx context.Context, database *sql.DB) ([]models.CourseGroup, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT g.id, g.course_id, g.teacher_id, g.group_name,
		       c.name, trim(u.first_name || ' ' || u.last_name)
		FROM course_groups g
		JOIN courses c ON c.id = g.course_id
		JOIN users u ON u.id = g.teacher_id
		ORDER BY c.name, g.group_name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.CourseGroup{}
	for rows.Next() {
		var g models.CourseGroup
		if err := rows.Scan(&g.ID, &g.CourseID, &g.TeacherID, &g.GroupName, &g.CourseName, &g.TeacherName); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetDetailedGroup — группа с курсом, преподавателем и полным списком участников.
func GetDetailedGroup(ctx context.Context, database *sql.DB, id int64) (*models.CourseGroup, error) {
	row := database.QueryRowContext(ctx, `
		SELECT g.id, g.course_id, g.teacher_id, g.group_name,
		       c.name, trim(u.first_name || ' ' || u.last_name)
		FROM course_groups g
		JOIN courses c ON c.id = g.course_id
		JOIN users u ON u.id = g.teacher_id
		WHERE g.id = $1
	`, id)
	var g models.CourseGroup
	if err := row.Scan(&g.ID, &g.CourseID, &g.TeacherID, &g.GroupName, &g.CourseName, &g.TeacherName); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	members, err := listGroupMembers(ctx, database, id)
	if err != nil {
		return nil, err
	}
	g.Members = members
	return &g, nil
}

func listGroupMembers(ctx context.Context, database *sql.DB, groupID int64) ([]models.User, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM group_users gu
		JOIN users u ON u.id = gu.user_id
		WHERE gu.group_id = $1
		ORDER BY u.last_name, u.first_name
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// AddUserToGroup — вставка строки членства; дубликат отсекает
// UNIQUE (group_id, user_id).
func AddUserToGroup(ctx context.Context, database *sql.DB, groupID, userID int64) error {
	_, err := database.ExecContext(ctx, `
		INSERT INTO group_users (group_id, user_id) VALUES ($1, $2)
	`, groupID, userID)
	return err
}

func RemoveUserFromGroup(ctx context.Context, database *sql.DB, groupID, userID int64) (int64, error) {
	res, err := database.ExecContext(ctx, `
		DELETE FROM group_users WHERE group_id = $1 AND user_id = $2
	`, groupID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// IsGroupMember — состоит ли пользователь в группе.
func IsGroupMember(ctx context.Context, database *sql.DB, groupID, userID int64) (bool, error) {
	var ok bool
	err := database.QueryRowContext(ctx, `
		SELECT TRUE FROM group_users WHERE group_id = $1 AND user_id = $2
	`, groupID, userID).Scan(&ok)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

func AssignTeacher(ctx context.Context, database *sql.DB, groupID, teacherID int64) (int64, error) {
	res, err := database.ExecContext(ctx, `
		UPDATE course_groups SET teacher_id = $1 WHERE id = $2
	`, teacherID, groupID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetGroupStudents — все участники всех групп курса.
func GetGroupStudents(ctx context.Context, database *sql.DB, courseID int64) ([]models.User, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT DISTINCT `+userColumns+`
		FROM group_users gu
		JOIN course_groups g ON g.id = gu.group_id
		JOIN users u ON u.id = gu.user_id
		WHERE g.course_id = $1
		ORDER BY u.last_name, u.first_name
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// GetTeacherGroups — группы, закреплённые за преподавателем.
func GetTeacherGroups(ctx context.Context, database *sql.DB, teacherID int64) ([]models.CourseGroup, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT g.id, g.course_id, g.teacher_id, g.group_name, c.name
		FROM course_groups g
		JOIN courses c ON c.id = g.course_id
		WHERE g.teacher_id = $1
		ORDER BY c.name, g.group_name
	`, teacherID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.CourseGroup{}
	for rows.Next() {
		var g models.CourseGroup
		if err := rows.Scan(&g.ID, &g.CourseID, &g.TeacherID, &g.GroupName, &g.CourseName); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
