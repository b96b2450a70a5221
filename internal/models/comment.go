package models

import "time"

type SchoolComment struct {
	ID         int64
	UserID     int64
	Comment    string
	IsVerified bool
	AddedAt    time.Time

	// Имя автора для публичного списка
	FirstName *string
	LastName  *string
}
