package models

import "time"

const (
	GradeMin = 0
	GradeMax = 10
)

type Grade struct {
	ID         int64
	GroupID    int64
	UserID     int64
	Grade      int
	Comment    *string
	AssignedAt time.Time

	// Детали для выборок
	GroupName   *string
	CourseName  *string
	TeacherName *string
	StudentName *string
}

// GradeUpdate — частичное обновление оценки.
type GradeUpdate struct {
	Grade   *int
	Comment *string
}
