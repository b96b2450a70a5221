package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lingvodom/school-api/internal/models"
)

func CreateUser(ctx context.Context, database *sql.DB, u models.User) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO users (email, username, first_name, last_name, phone, hashed_password, role_id, is_active, is_superuser, is_verified)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10)
		RETURNING id
	`, u.Email, u.Username, u.FirstName, u.LastName, u.Phone, u.HashedPassword,
		u.RoleID, u.IsActive, u.IsSuperuser, u.IsVerified).Scan(&id)
	return id, err
}

const userColumns = `u.id, u.email, u.username, u.first_name, u.last_name, COALESCE(u.phone, ''),
	u.hashed_password, u.registered_at, u.role_id, u.is_active, u.is_superuser, u.is_verified`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.Phone,
		&u.HashedPassword, &u.RegisteredAt, &u.RoleID, &u.IsActive, &u.IsSuperuser, &u.IsVerified)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func GetUserByID(ctx context.Context, database *sql.DB, id int64) (*models.User, error) {
	row := database.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id)
	return scanUser(row)
}

func GetUserByEmail(ctx context.Context, database *sql.DB, email string) (*models.User, error) {
	row := database.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE u.email = $1`, email)
	return scanUser(row)
}

// GetDetailedUser — пользователь вместе с именем роли (для админской карточки).
func GetDetailedUser(ctx context.Context, database *sql.DB, id int64) (*models.User, error) {
	row := database.QueryRowContext(ctx, `
		SELECT `+userColumns+`, r.name
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1
	`, id)
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.Phone,
		&u.HashedPassword, &u.RegisteredAt, &u.RoleID, &u.IsActive, &u.IsSuperuser, &u.IsVerified,
		&u.RoleName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// UpdateUser — частичное обновление: SET собирается только из заданных полей.
func UpdateUser(ctx context.Context, database *sql.DB, id int64, upd models.UserUpdate) (int64, error) {
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
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Username != nil {
		add("username", *upd.Username)
	}
	if upd.FirstName != nil {
		add("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		add("last_name", *upd.LastName)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}
	if set == "" {
		// нечего обновлять; считаем за no-op над существующей записью
		var exists bool
		err := database.QueryRowContext(ctx, `SELECT TRUE FROM users WHERE id = $1`, id).Scan(&exists)
		if err == sql.ErrNoRows {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		return 1, nil
	}
	args = append(args, id)
	res, err := database.ExecContext(ctx, fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, set, idx), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func SetUserRole(ctx context.Context, database *sql.DB, userID, roleID int64) (int64, error) {
	res, err := database.ExecContext(ctx, `UPDATE users SET role_id = $1 WHERE id = $2`, roleID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func DeleteUser(ctx context.Context, database *sql.DB, id int64) (int64, error) {
	res, err := database.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func GetRoleByID(ctx context.Context, database *sql.DB, id int64) (*models.Role, error) {
	row := database.QueryRowContext(ctx, `SELECT id, name, permissions FROM roles WHERE id = $1`, id)
	var r models.Role
	if err := row.Scan(&r.ID, &r.Name, &r.Permissions); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func ListRoles(ctx context.Context, database *sql.DB) ([]models.Role, error) {
	rows, err := database.QueryContext(ctx, `SELECT id, name, permissions FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.Role{}
	for rows.Next() {
		var r models.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Permissions); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListTeachers — пользователи с ролью «teacher».
func ListTeachers(ctx context.Context, database *sql.DB) ([]models.User, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE r.name = 'teacher'
		ORDER BY u.last_name, u.first_name
	`)
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
