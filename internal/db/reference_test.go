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

func TestReference_UniqueNames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	if _, err := db.CreateLanguage(ctx, h.DB, models.Language{Name: "english", RusName: "английский"}); err != nil {
		t.Fatal(err)
	}
	_, err = db.CreateLanguage(ctx, h.DB, models.Language{Name: "english", RusName: "повтор"})
	if err == nil {
		t.Fatal("дубликат имени языка должен отклоняться")
	}
	if !apperr.IsUniqueViolation(err) {
		t.Fatalf("ожидали unique violation, получили %v", err)
	}

	if _, err := db.CreateCourseFormat(ctx, h.DB, "online"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreateCourseFormat(ctx, h.DB, "online"); !apperr.IsUniqueViolation(err) {
		t.Fatalf("ожидали unique violation для формата, получили %v", err)
	}
}

func TestReference_DeleteMissing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	n, err := db.DeleteLevel(ctx, h.DB, 99999)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("удаление несуществующего уровня: affected=%d", n)
	}
}

func TestReference_DeleteReferencedForbidden(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	langID, formatID, ageID := mustSeedRefs(t, h.DB)
	if _, err := db.CreateCourse(ctx, h.DB, models.NewCourse{
		Name: "Английский A1", GroupSize: 8, Price: 4500,
		LanguageID: langID, FormatID: formatID, AgeGroupID: ageID, IsActive: true,
	}); err != nil {
		t.Fatal(err)
	}

	_, err = db.DeleteLanguage(ctx, h.DB, langID)
	if err == nil {
		t.Fatal("язык, на который ссылается курс, не должен удаляться")
	}
	if !apperr.IsForeignKeyViolation(err) {
		t.Fatalf("ожидали foreign key violation, получили %v", err)
	}
}
