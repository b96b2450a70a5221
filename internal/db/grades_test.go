//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"testing"

	"github.com/lingvodom/school-api/internal/apperr"
	"github.com/lingvodom/school-api/internal/db"
	"github.com/lingvodom/school-api/internal/models"
	"github.com/lingvodom/school-api/internal/testutil/testdb"
)

func TestGrades_StudentMarksNewestFirst(t *testing.T) {
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
	groupID := mustSeedGroup(t, h.DB, courseID, teacherID)
	if err := db.AddUserToGroup(ctx, h.DB, groupID, studentID); err != nil {
		t.Fatal(err)
	}

	for _, v := range []int{3, 7, 10} {
		if _, err := db.AddGrade(ctx, h.DB, models.Grade{
			GroupID: groupID, UserID: studentID, Grade: v,
		}); err != nil {
			t.Fatal(err)
		}
	}

	marks, err := db.GetStudentMarks(ctx, h.DB, studentID)
	if err != nil {
		t.Fatal(err)
	}
	if len(marks) != 3 {
		t.Fatalf("оценок %d, ожидали 3", len(marks))
	}
	// при одинаковом assigned_at порядок стабилизируется по id DESC
	if marks[0].Grade != 10 || marks[2].Grade != 3 {
		t.Fatalf("порядок не «новые сверху»: %v, %v, %v",
			marks[0].Grade, marks[1].Grade, marks[2].Grade)
	}
	if marks[0].GroupName == nil || marks[0].CourseName == nil || marks[0].TeacherName == nil {
		t.Fatalf("выборка без связей: %+v", marks[0])
	}
}

func TestGrades_CheckConstraint(t *testing.T) {
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
	groupID := mustSeedGroup(t, h.DB, courseID, teacherID)

	_, err = db.AddGrade(ctx, h.DB, models.Grade{GroupID: groupID, UserID: studentID, Grade: 11})
	if !apperr.IsCheckViolation(err) {
		t.Fatalf("оценка 11: ожидали check violation, получили %v", err)
	}
	_, err = db.AddGrade(ctx, h.DB, models.Grade{GroupID: groupID, UserID: studentID, Grade: -1})
	if !apperr.IsCheckViolation(err) {
		t.Fatalf("оценка -1: ожидали check violation, получили %v", err)
	}
}

func TestGroupMembership_Duplicate(t *testing.T) {
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
	groupID := mustSeedGroup(t, h.DB, courseID, teacherID)

	if err := db.AddUserToGroup(ctx, h.DB, groupID, studentID); err != nil {
		t.Fatal(err)
	}
	if err := db.AddUserToGroup(ctx, h.DB, groupID, studentID); !apperr.IsUniqueViolation(err) {
		t.Fatalf("повторное членство: ожидали unique violation, получили %v", err)
	}

	member, err := db.IsGroupMember(ctx, h.DB, groupID, studentID)
	if err != nil {
		t.Fatal(err)
	}
	if !member {
		t.Fatal("ученик должен числиться в группе")
	}

	n, err := db.RemoveUserFromGroup(ctx, h.DB, groupID, studentID)
	if err != nil || n != 1 {
		t.Fatalf("удаление из группы: n=%d err=%v", n, err)
	}
	n, err = db.RemoveUserFromGroup(ctx, h.DB, groupID, studentID)
	if err != nil || n != 0 {
		t.Fatalf("повторное удаление: n=%d err=%v", n, err)
	}
}
