//go:build testutil
// +build testutil

package service_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/lingvodom/school-api/internal/apperr"
	"github.com/lingvodom/school-api/internal/db"
	"github.com/lingvodom/school-api/internal/models"
	"github.com/lingvodom/school-api/internal/service"
	"github.com/lingvodom/school-api/internal/testutil/testdb"
)

func testLogger() *zap.SugaredLogger { return zap.NewNop().Sugar() }

var seq int

func seedUser(t *testing.T, database *sql.DB) int64 {
	t.Helper()
	seq++
	id, err := db.CreateUser(context.Background(), database, models.User{
		Email:          fmt.Sprintf("svc%d@lingvodom.ru", seq),
		Username:       fmt.Sprintf("svc%d", seq),
		FirstName:      "Тест",
		HashedPassword: "x",
		IsActive:       true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func seedCourse(t *testing.T, database *sql.DB) int64 {
	t.Helper()
	ctx := context.Background()
	seq++
	langID, err := db.CreateLanguage(ctx, database, models.Language{Name: fmt.Sprintf("svc-lang-%d", seq)})
	if err != nil {
		t.Fatal(err)
	}
	formatID, err := db.CreateCourseFormat(ctx, database, fmt.Sprintf("svc-format-%d", seq))
	if err != nil {
		t.Fatal(err)
	}
	ageID, err := db.CreateAgeGroup(ctx, database, models.AgeGroup{Name: fmt.Sprintf("svc-age-%d", seq), MinAge: 7, MaxAge: 15})
	if err != nil {
		t.Fatal(err)
	}
	id, err := db.CreateCourse(ctx, database, models.NewCourse{
		Name: fmt.Sprintf("svc-course-%d", seq), GroupSize: 6, Price: 3000,
		LanguageID: langID, FormatID: formatID, AgeGroupID: ageID, IsActive: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestEnrollment_Lifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	svc := service.NewEnrollment(h.DB, testLogger())
	userID := seedUser(t, h.DB)
	courseID := seedCourse(t, h.DB)

	// несуществующий курс
	if _, err := svc.Create(ctx, userID, 99999); !apperr.IsNotFound(err) {
		t.Fatalf("заявка на несуществующий курс: ожидали NotFound, получили %v", err)
	}

	req, err := svc.Create(ctx, userID, courseID)
	if err != nil {
		t.Fatal(err)
	}
	if req.Status != models.RequestPending {
		t.Fatalf("статус новой заявки %s", req.Status)
	}

	// повтор — Conflict
	if _, err := svc.Create(ctx, userID, courseID); !apperr.IsConflict(err) {
		t.Fatalf("повторная заявка: ожидали Conflict, получили %v", err)
	}

	// pending → approved разрешён
	st := models.RequestApproved
	upd, err := svc.Update(ctx, req.ID, models.RequestUpdate{Status: &st})
	if err != nil {
		t.Fatal(err)
	}
	if upd.Status != models.RequestApproved {
		t.Fatalf("после одобрения статус %s", upd.Status)
	}

	// approved → rejected запрещён
	st = models.RequestRejected
	if _, err := svc.Update(ctx, req.ID, models.RequestUpdate{Status: &st}); !apperr.IsBadRequest(err) {
		t.Fatalf("переход из конечного статуса: ожидали BadRequest, получили %v", err)
	}

	// повторная установка того же статуса идемпотентна
	st = models.RequestApproved
	if _, err := svc.Update(ctx, req.ID, models.RequestUpdate{Status: &st}); err != nil {
		t.Fatalf("идемпотентное обновление: %v", err)
	}

	// несуществующая заявка
	if _, err := svc.Update(ctx, 99999, models.RequestUpdate{Status: &st}); !apperr.IsNotFound(err) {
		t.Fatalf("обновление несуществующей заявки: ожидали NotFound, получили %v", err)
	}
}
