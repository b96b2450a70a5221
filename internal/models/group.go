package models

type CourseGroup struct {
	ID        int64
	CourseID  int64
	TeacherID int64
	GroupName string

	// Детали для списков
	CourseName  *string
	TeacherName *string
	Members     []User
}

type GroupUser struct {
	ID      int64
	GroupID int64
	UserID  int64
}
