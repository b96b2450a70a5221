package app

import (
	"time"

	"github.com/lingvodom/school-api/internal/models"
)

// DTO-слой: наружу уходят snake_case JSON-структуры, внутренние модели
// не сериализуются напрямую.

type userResponse struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Phone        string  `json:"phone,omitempty"`
	RegisteredAt string  `json:"registered_at"`
	RoleID       *int64  `json:"role_id,omitempty"`
	RoleName     *string `json:"role_name,omitempty"`
	IsActive     bool    `json:"is_active"`
	IsSuperuser  bool    `json:"is_superuser"`
	IsVerified   bool    `json:"is_verified"`
}

func userDTO(u *models.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		RegisteredAt: u.RegisteredAt.Format(time.RFC3339),
		RoleID:       u.RoleID,
		RoleName:     u.RoleName,
		IsActive:     u.IsActive,
		IsSuperuser:  u.IsSuperuser,
		IsVerified:   u.IsVerified,
	}
}

func usersDTO(us []models.User) []userResponse {
	out := make([]userResponse, 0, len(us))
	for i := range us {
		out = append(out, userDTO(&us[i]))
	}
	return out
}

type languageResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	RusName string `json:"rus_name"`
}

func languageDTO(l *models.Language) languageResponse {
	return languageResponse{ID: l.ID, Name: l.Name, RusName: l.RusName}
}

type levelResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func levelDTO(l *models.Level) levelResponse {
	return levelResponse{ID: l.ID, Name: l.Name, Description: l.Description}
}

type formatResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func formatDTO(f *models.CourseFormat) formatResponse {
	return formatResponse{ID: f.ID, Name: f.Name}
}

type ageGroupResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
}

func ageGroupDTO(g *models.AgeGroup) ageGroupResponse {
	return ageGroupResponse{ID: g.ID, Name: g.Name, MinAge: g.MinAge, MaxAge: g.MaxAge}
}

func languagesDTO(ls []models.Language) []languageResponse {
	out := make([]languageResponse, 0, len(ls))
	for i := range ls {
		out = append(out, languageDTO(&ls[i]))
	}
	return out
}

func levelsDTO(ls []models.Level) []levelResponse {
	out := make([]levelResponse, 0, len(ls))
	for i := range ls {
		out = append(out, levelDTO(&ls[i]))
	}
	return out
}

func formatsDTO(fs []models.CourseFormat) []formatResponse {
	out := make([]formatResponse, 0, len(fs))
	for i := range fs {
		out = append(out, formatDTO(&fs[i]))
	}
	return out
}

func ageGroupsDTO(gs []models.AgeGroup) []ageGroupResponse {
	out := make([]ageGroupResponse, 0, len(gs))
	for i := range gs {
		out = append(out, ageGroupDTO(&gs[i]))
	}
	return out
}

type courseResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	GroupSize    int     `json:"group_size"`
	Intensity    string  `json:"intensity"`
	Price        float64 `json:"price"`
	LanguageID   int64   `json:"language_id"`
	FormatID     int64   `json:"format_id"`
	AgeGroupID   int64   `json:"age_group_id"`
	IsActive     bool    `json:"is_active"`
	LanguageName *string `json:"language_name,omitempty"`
	FormatName   *string `json:"format_name,omitempty"`
	AgeGroupName *string `json:"age_group_name,omitempty"`
	Levels       []int64 `json:"levels"`
}

func courseDTO(c *models.Course) courseResponse {
	levels := c.LevelIDs
	if levels == nil {
		levels = []int64{}
	}
	return courseResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		GroupSize:    c.GroupSize,
		Intensity:    c.Intensity,
		Price:        c.Price,
		LanguageID:   c.LanguageID,
		FormatID:     c.FormatID,
		AgeGroupID:   c.AgeGroupID,
		IsActive:     c.IsActive,
		LanguageName: c.LanguageName,
		FormatName:   c.FormatName,
		AgeGroupName: c.AgeGroupName,
		Levels:       levels,
	}
}

type requestResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	CourseID     int64   `json:"course_id"`
	Status       string  `json:"status"`
	IsProcessed  bool    `json:"is_processed"`
	IsArchived   bool    `json:"is_archived"`
	CreatedAt    string  `json:"created_at"`
	UserName     *string `json:"user_name,omitempty"`
	UserEmail    *string `json:"user_email,omitempty"`
	CourseName   *string `json:"course_name,omitempty"`
	LanguageName *string `json:"language_name,omitempty"`
}

func requestDTO(r *models.CourseRequest) requestResponse {
	return requestResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		CourseID:     r.CourseID,
		Status:       string(r.Status),
		IsProcessed:  r.IsProcessed,
		IsArchived:   r.IsArchived,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UserName:     r.UserName,
		UserEmail:    r.UserEmail,
		CourseName:   r.CourseName,
		LanguageName: r.LanguageName,
	}
}

type groupResponse struct {
	ID          int64          `json:"id"`
	CourseID    int64          `json:"course_id"`
	TeacherID   int64          `json:"teacher_id"`
	GroupName   string         `json:"group_name"`
	CourseName  *string        `json:"course_name,omitempty"`
	TeacherName *string        `json:"teacher_name,omitempty"`
	Members     []userResponse `json:"members,omitempty"`
}

func groupDTO(g *models.CourseGroup) groupResponse {
	out := groupResponse{
		ID:          g.ID,
		CourseID:    g.CourseID,
		TeacherID:   g.TeacherID,
		GroupName:   g.GroupName,
		CourseName:  g.CourseName,
		TeacherName: g.TeacherName,
	}
	if g.Members != nil {
		out.Members = usersDTO(g.Members)
	}
	return out
}

type gradeResponse struct {
	ID          int64   `json:"id"`
	GroupID     int64   `json:"group_id"`
	UserID      int64   `json:"user_id"`
	Grade       int     `json:"grade"`
	Comment     *string `json:"comment,omitempty"`
	AssignedAt  string  `json:"assigned_at"`
	GroupName   *string `json:"group_name,omitempty"`
	CourseName  *string `json:"course_name,omitempty"`
	TeacherName *string `json:"teacher_name,omitempty"`
	StudentName *string `json:"student_name,omitempty"`
}

func gradeDTO(g *models.Grade) gradeResponse {
	return gradeResponse{
		ID:          g.ID,
		GroupID:     g.GroupID,
		UserID:      g.UserID,
		Grade:       g.Grade,
		Comment:     g.Comment,
		AssignedAt:  g.AssignedAt.Format(time.RFC3339),
		GroupName:   g.GroupName,
		CourseName:  g.CourseName,
		TeacherName: g.TeacherName,
		StudentName: g.StudentName,
	}
}

type commentResponse struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	Comment    string  `json:"comment"`
	IsVerified bool    `json:"is_verified"`
	AddedAt    string  `json:"added_at"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
}

func commentDTO(c *models.SchoolComment) commentResponse {
	return commentResponse{
		ID:         c.ID,
		UserID:     c.UserID,
		Comment:    c.Comment,
		IsVerified: c.IsVerified,
		AddedAt:    c.AddedAt.Format(time.RFC3339),
		FirstName:  c.FirstName,
		LastName:   c.LastName,
	}
}
