package models

type Language struct {
	ID      int64
	Name    string
	RusName string
}

type Level struct {
	ID          int64
	Name        string
	Description *string
}

type CourseFormat struct {
	ID   int64
	Name string
}

type AgeGroup struct {
	ID     int64
	Name   string
	MinAge int
	MaxAge int
}

// LevelTypeStart — единственный используемый сейчас тег связи курс↔уровень.
const LevelTypeStart = "start_level"

type CourseLevel struct {
	ID        int64
	CourseID  int64
	LevelID   int64
	LevelType string
}

type Course struct {
	ID          int64
	Name        string
	Description string
	GroupSize   int
	Intensity   string
	Price       float64
	LanguageID  int64
	FormatID    int64
	AgeGroupID  int64
	IsActive    bool

	// Детали для выборок со связями
	LanguageName *string
	FormatName   *string
	AgeGroupName *string
	LevelIDs     []int64
}

// NewCourse — данные для создания курса.
type NewCourse struct {
	Name        string
	Description string
	GroupSize   int
	Intensity   string
	Price       float64
	LanguageID  int64
	FormatID    int64
	AgeGroupID  int64
	IsActive    bool
	Levels      []int64
}

// CourseUpdate — частичное обновление курса. Levels != nil означает
// полную замену набора уровней (не слияние).
type CourseUpdate struct {
	Name        *string
	Description *string
	GroupSize   *int
	Intensity   *string
	Price       *float64
	LanguageID  *int64
	FormatID    *int64
	AgeGroupID  *int64
	IsActive    *bool
	Levels      []int64
}

// UserCourse — пара (курс, группа), в которой состоит пользователь.
type UserCourse struct {
	CourseID   int64
	CourseName string
	GroupID    int64
	GroupName  string
}
