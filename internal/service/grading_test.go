//go:build testutil
// +build testutil

package service_test

import (
	"context"
	"testing"

	"github.com/lingvodom/school-api/internal/apperr"
	"github.com/lingvodom/school-api/internal/db"
	"github.com/lingvodom/school-api/internal/models"
	"github.com/lingvodom/school-api/internal/service"
	"github.com/lingvodom/school-api/internal/testutil/testdb"
)

func TestGrading_MembershipRequired(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	svc := service.NewGrading(h.DB, testLogger())

	teacherID := seedUser(t, h.DB)
	studentID := seedUser(t, h.DB)
	outsiderID := seedUser(t, h.DB)
	courseID := seedCourse(t, h.DB)
	groupID, err := db.CreateCourseGroup(ctx, h.DB, models.CourseGroup{
		CourseID: courseID, TeacherID: teacherID, GroupName: "утренняя",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AddUserToGroup(ctx, h.DB, groupID, studentID); err != nil {
		t.Fatal(err)
	}

	// участнику — можно
	g, err := svc.Add(ctx, groupID, studentID, 8, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.Grade != 8 {
		t.Fatalf("оценка %d", g.Grade)
	}

	// не участнику — нельзя, хотя и группа, и пользователь существуют
	if _, err := svc.Add(ctx, groupID, outsiderID, 8, nil); !apperr.IsBadRequest(err) {
		t.Fatalf("оценка не участнику: ожидали BadRequest, получили %v", err)
	}

	// несуществующая группа / пользователь
	if _, err := svc.Add(ctx, 99999, studentID, 8, nil); !apperr.IsNotFound(err) {
		t.Fatalf("несуществующая группа: ожидали NotFound, получили %v", err)
	}
	if _, err := svc.Add(ctx, groupID, 99999, 8, nil); !apperr.IsNotFound(err) {
		t.Fatalf("несуществующий пользователь: ожидали NotFound, получили %v", err)
	}
}

func TestGrading_ValueValidation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	svc := service.NewGrading(h.DB, testLogger())

	// границы и типы проверяются до любых обращений к базе,
	// поэтому не нужны даже существующие группа и пользователь
	for _, bad := range []any{-1, 11, 5.5, "5", nil} {
		if _, err := svc.Add(ctx, 1, 1, bad, nil); !apperr.IsBadRequest(err) {
			t.Errorf("оценка %v: ожидали BadRequest, получили %v", bad, err)
		}
	}

	// float с целым значением принимается (JSON-числа приходят как float64)
	teacherID := seedUser(t, h.DB)
	studentID := seedUser(t, h.DB)
	courseID := seedCourse(t, h.DB)
	groupID, err := db.CreateCourseGroup(ctx, h.DB, models.CourseGroup{
		CourseID: courseID, TeacherID: teacherID, GroupName: "вечерняя",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AddUserToGroup(ctx, h.DB, groupID, studentID); err != nil {
		t.Fatal(err)
	}
	g, err := svc.Add(ctx, groupID, studentID, float64(10), nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.Grade != 10 {
		t.Fatalf("оценка %d, ожидали 10", g.Grade)
	}
}

func TestComments_Moderation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	svc := service.NewComments(h.DB, testLogger())
	userID := seedUser(t, h.DB)

	if _, err := svc.Add(ctx, userID, "   "); !apperr.IsBadRequest(err) {
		t.Fatalf("пустой отзыв: ожидали BadRequest, получили %v", err)
	}

	id, err := svc.Add(ctx, userID, "Отличная школа")
	if err != nil {
		t.Fatal(err)
	}

	// до модерации отзыв не виден публично
	visible, err := svc.ListVerified(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(visible) != 0 {
		t.Fatalf("до подтверждения видно %d отзывов", len(visible))
	}
	queue, err := svc.ListUnverified(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(queue) != 1 {
		t.Fatalf("в очереди модерации %d отзывов", len(queue))
	}

	if err := svc.Verify(ctx, id); err != nil {
		t.Fatal(err)
	}
	visible, err = svc.ListVerified(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(visible) != 1 || visible[0].FirstName == nil {
		t.Fatalf("после подтверждения: %+v", visible)
	}

	if err := svc.Verify(ctx, 99999); !apperr.IsNotFound(err) {
		t.Fatalf("подтверждение несуществующего отзыва: ожидали NotFound, получили %v", err)
	}
}
