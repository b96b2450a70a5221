//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/lingvodom/school-api/internal/db"
	"github.com/lingvodom/school-api/internal/models"
)

var seedSeq int

func nextSeq() int {
	seedSeq++
	return seedSeq
}

func mustSeedUser(t *testing.T, database *sql.DB, name string) int64 {
	t.Helper()
	n := nextSeq()
	id, err := db.CreateUser(context.Background(), database, models.User{
		Email:          fmt.Sprintf("user%d@lingvodom.ru", n),
		Username:       fmt.Sprintf("user%d", n),
		FirstName:      name,
		HashedPassword: "x",
		IsActive:       true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

// mustSeedRefs — минимальный набор справочников для курса.
func mustSeedRefs(t *testing.T, database *sql.DB) (langID, formatID, ageID int64) {
	t.Helper()
	ctx := context.Background()
	n := nextSeq()
	langID, err := db.CreateLanguage(ctx, database, models.Language{
		Name: fmt.Sprintf("lang-%d", n), RusName: "язык",
	})
	if err != nil {
		t.Fatal(err)
	}
	formatID, err = db.CreateCourseFormat(ctx, database, fmt.Sprintf("format-%d", n))
	if err != nil {
		t.Fatal(err)
	}
	ageID, err = db.CreateAgeGroup(ctx, database, models.AgeGroup{
		Name: fmt.Sprintf("age-%d", n), MinAge: 7, MaxAge: 12,
	})
	if err != nil {
		t.Fatal(err)
	}
	return langID, formatID, ageID
}

func mustSeedLevel(t *testing.T, database *sql.DB) int64 {
	t.Helper()
	id, err := db.CreateLevel(context.Background(), database, models.Level{
		Name: fmt.Sprintf("level-%d", nextSeq()),
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func mustSeedCourse(t *testing.T, database *sql.DB, levels ...int64) int64 {
	t.Helper()
	langID, formatID, ageID := mustSeedRefs(t, database)
	id, err := db.CreateCourse(context.Background(), database, models.NewCourse{
		Name:       fmt.Sprintf("course-%d", nextSeq()),
		GroupSize:  8,
		Price:      5000,
		LanguageID: langID,
		FormatID:   formatID,
		AgeGroupID: ageID,
		IsActive:   true,
		Levels:     levels,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func mustSeedGroup(t *testing.T, database *sql.DB, courseID, teacherID int64) int64 {
	t.Helper()
	id, err := db.CreateCourseGroup(context.Background(), database, models.CourseGroup{
		CourseID: courseID, TeacherID: teacherID,
		GroupName: fmt.Sprintf("group-%d", nextSeq()),
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}
