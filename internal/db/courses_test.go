//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"sort"
	"testing"

	"github.com/lingvodom/school-api/internal/db"
	"github.com/lingvodom/school-api/internal/models"
	"github.com/lingvodom/school-api/internal/testutil/testdb"
)

func TestCourse_LevelsFullReplace(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	l1 := mustSeedLevel(t, h.DB)
	l2 := mustSeedLevel(t, h.DB)
	l3 := mustSeedLevel(t, h.DB)

	courseID := mustSeedCourse(t, h.DB, l1, l2)

	got, err := db.GetCourseLevelIDs(ctx, h.DB, courseID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("после создания уровней %d, ожидали 2", len(got))
	}

	// полная замена набора, не слияние
	n, err := db.UpdateCourse(ctx, h.DB, courseID, models.CourseUpdate{Levels: []int64{l2, l3}})
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatal("обновление не затронуло курс")
	}

	got, err = db.GetCourseLevelIDs(ctx, h.DB, courseID)
	if err != nil {
		t.Fatal(err)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	want := []int64{l2, l3}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("после замены: %v, ожидали %v", got, want)
	}
}

func TestCourse_DetailedSelect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	l1 := mustSeedLevel(t, h.DB)
	courseID := mustSeedCourse(t, h.DB, l1)

	c, err := db.GetCourseByID(ctx, h.DB, courseID)
	if err != nil {
		t.Fatal(err)
	}
	if c == nil {
		t.Fatal("курс не найден")
	}
	if c.LanguageName == nil || c.FormatName == nil || c.AgeGroupName == nil {
		t.Fatalf("детальная выборка без имён связей: %+v", c)
	}
	if len(c.LevelIDs) != 1 || c.LevelIDs[0] != l1 {
		t.Fatalf("уровни курса: %v", c.LevelIDs)
	}

	missing, err := db.GetCourseByID(ctx, h.DB, 99999)
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Fatal("несуществующий курс должен давать nil")
	}
}

func TestUserCourses_ThroughGroups(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	teacherID := mustSeedUser(t, h.DB, "Мария")
	studentID := mustSeedUser(t, h.DB, "Иван")
	courseID := mustSeedCourse(t, h.DB)

	g1 := mustSeedGroup(t, h.DB, courseID, teacherID)
	g2 := mustSeedGroup(t, h.DB, courseID, teacherID)
	if err := db.AddUserToGroup(ctx, h.DB, g1, studentID); err != nil {
		t.Fatal(err)
	}
	if err := db.AddUserToGroup(ctx, h.DB, g2, studentID); err != nil {
		t.Fatal(err)
	}

	out, err := db.GetUserCourses(ctx, h.DB, studentID)
	if err != nil {
		t.Fatal(err)
	}
	// пользователь в двух группах одного курса — две записи (курс, группа)
	if len(out) != 2 {
		t.Fatalf("ожидали 2 записи, получили %d: %+v", len(out), out)
	}
	for _, uc := range out {
		if uc.CourseID != courseID || uc.CourseName == "" || uc.GroupName == "" {
			t.Fatalf("неполная запись: %+v", uc)
		}
	}
}
