package models

import "time"

type Role struct {
	ID          int64
	Name        string
	Permissions []byte // произвольный JSON с правами, бекенд его не интерпретирует
}

type User struct {
	ID             int64
	Email          string
	Username       string
	FirstName      string
	LastName       string
	Phone          string
	HashedPassword string
	RegisteredAt   time.Time
	RoleID         *int64
	RoleName       *string // заполняется только в детальных выборках
	IsActive       bool
	IsSuperuser    bool
	IsVerified     bool
}

// UserUpdate — частичное обновление: nil-поле означает «не трогать».
type UserUpdate struct {
	Email     *string
	Username  *string
	FirstName *string
	LastName  *string
	Phone     *string
	IsActive  *bool
}
