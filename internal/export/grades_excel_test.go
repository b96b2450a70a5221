package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lingvodom/school-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestNewGradesWorkbook_SheetsAndCells(t *testing.T) {
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	grades := []models.Grade{
		{ID: 1, GroupID: 1, UserID: 10, Grade: 8, AssignedAt: at,
			GroupName: strPtr("А1-утро"), CourseName: strPtr("Английский A1"),
			TeacherName: strPtr("Мария Петрова"), StudentName: strPtr("Иван Иванов")},
		{ID: 2, GroupID: 1, UserID: 11, Grade: 5, Comment: strPtr("домашка не сдана"), AssignedAt: at,
			GroupName: strPtr("А1-утро"), CourseName: strPtr("Английский A1"),
			TeacherName: strPtr("Мария Петрова"), StudentName: strPtr("Пётр Сидоров")},
		{ID: 3, GroupID: 2, UserID: 10, Grade: 10, AssignedAt: at,
			GroupName: strPtr("B2-вечер"), CourseName: strPtr("Немецкий B2"),
			TeacherName: strPtr("Анна Шмидт"), StudentName: strPtr("Иван Иванов")},
	}

	wb, err := NewGradesWorkbook(grades)
	if err != nil {
		t.Fatal(err)
	}
	sheets := wb.File.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("ожидали 2 листа, получили %d: %v", len(sheets), sheets)
	}
	for _, s := range sheets {
		if !strings.Contains(s, "А1-утро") && !strings.Contains(s, "B2-вечер") {
			t.Errorf("неожиданное имя листа %q", s)
		}
	}

	got, err := wb.File.GetCellValue(sheets[0], "A1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Ученик" {
		t.Errorf("A1 = %q, ожидали заголовок", got)
	}
	got, _ = wb.File.GetCellValue(sheets[0], "B2")
	if got != "8" {
		t.Errorf("B2 = %q, ожидали оценку первой строки", got)
	}
	got, _ = wb.File.GetCellValue(sheets[0], "C3")
	if got != "домашка не сдана" {
		t.Errorf("C3 = %q, ожидали комментарий", got)
	}
}

func TestNewGradesWorkbook_Empty(t *testing.T) {
	wb, err := NewGradesWorkbook(nil)
	if err != nil {
		t.Fatal(err)
	}
	sheets := wb.File.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Оценки" {
		t.Fatalf("пустая выгрузка должна давать один лист «Оценки», получили %v", sheets)
	}

	var buf bytes.Buffer
	if err := wb.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("книга не записалась")
	}
}

func TestSheetTitleFallbackAndLimit(t *testing.T) {
	g := models.Grade{GroupID: 42}
	if got := sheetTitle(g, 42); got != "Группа 42" {
		t.Errorf("fallback-имя листа: %q", got)
	}

	long := strings.Repeat("я", 60)
	g = models.Grade{GroupName: &long}
	if r := []rune(sheetTitle(g, 1)); len(r) > 31 {
		t.Errorf("имя листа длиннее лимита Excel: %d рун", len(r))
	}
}

func TestFilename(t *testing.T) {
	name := Filename()
	if !strings.HasSuffix(name, ".xlsx") || strings.ContainsAny(name, `\/:*?"<>|`) {
		t.Errorf("некорректное имя файла %q", name)
	}
}
