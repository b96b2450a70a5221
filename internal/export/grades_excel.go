package export

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lingvodom/school-api/internal/models"
)

var gradesHeader = []string{"Ученик", "Оценка", "Комментарий", "Преподаватель", "Дата"}

// GradesWorkbook — книга с оценками: по листу на группу, жирный заголовок,
// автофильтр в первой строке.
type GradesWorkbook struct {
	File *excelize.File
}

// NewGradesWorkbook группирует оценки по группам; лист именуется
// «Группа — Курс». Пустой вход даёт книгу с единственным пустым листом.
func NewGradesWorkbook(grades []models.Grade) (*GradesWorkbook, error) {
	byGroup := map[int64][]models.Grade{}
	var order []int64
	for _, g := range grades {
		if _, ok := byGroup[g.GroupID]; !ok {
			order = append(order, g.GroupID)
		}
		byGroup[g.GroupID] = append(byGroup[g.GroupID], g)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	f := excelize.NewFile()

	if len(order) == 0 {
		if err := f.SetSheetName("Sheet1", "Оценки"); err != nil {
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
		if err := writeSheet(f, "Оценки", nil); err != nil {
			return nil, err
		}
		return &GradesWorkbook{File: f}, nil
	}

	for i, groupID := range order {
		gs := byGroup[groupID]
		name := sheetTitle(gs[0], groupID)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet %q: %w", name, err)
			}
		}
		if err := writeSheet(f, name, gs); err != nil {
			return nil, err
		}
	}
	return &GradesWorkbook{File: f}, nil
}

func writeSheet(f *excelize.File, sheet string, gs []models.Grade) error {
	for col, h := range gradesHeader {
		cell := fmt.Sprintf("%s1", colName(col+1))
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	end := colName(len(gradesHeader)) + "1"
	_ = f.SetCellStyle(sheet, "A1", end, bold)
	_ = f.AutoFilter(sheet, "A1:"+end, nil)

	rows := make([][]string, 0, len(gs))
	for _, g := range gs {
		comment := ""
		if g.Comment != nil {
			comment = *g.Comment
		}
		rows = append(rows, []string{
			strDeref(g.StudentName),
			strconv.Itoa(g.Grade),
			comment,
			strDeref(g.TeacherName),
			g.AssignedAt.Format("02.01.2006 15:04"),
		})
	}
	for r, row := range rows {
		for c, val := range row {
			cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
			if err := f.SetCellStr(sheet, cell, val); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	// эвристическая ширина: по длине заголовка и первых строк
	for c := 1; c <= len(gradesHeader); c++ {
		maxim := visualLen(gradesHeader[c-1])
		for r := 0; r < minim(50, len(rows)); r++ {
			if l := visualLen(rows[r][c-1]); l > maxim {
				maxim = l
			}
		}
		w := float64(maxim) * 1.1
		if w < 12 {
			w = 12
		}
		if w > 50 {
			w = 50
		}
		_ = f.SetColWidth(sheet, colName(c), colName(c), w)
	}
	return nil
}

func (w *GradesWorkbook) WriteTo(dst io.Writer) error {
	return w.File.Write(dst)
}

// Filename — человекочитаемое имя файла выгрузки на текущую дату.
func Filename() string {
	return sanitizeFileName(fmt.Sprintf("Оценки — %s.xlsx", time.Now().Format("02.01.2006")))
}

func sheetTitle(g models.Grade, groupID int64) string {
	group := strDeref(g.GroupName)
	if group == "" {
		group = fmt.Sprintf("Группа %d", groupID)
	}
	title := group
	if course := strDeref(g.CourseName); course != "" {
		title = group + " — " + course
	}
	// лимит Excel на имя листа
	if r := []rune(title); len(r) > 31 {
		title = string(r[:31])
	}
	return sanitizeSheetName(title)
}

// helpers

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

// visualLen — приближённая ширина текста в знаках, таб считается за 4.
func visualLen(s string) int {
	n := 0
	for _, r := range s {
		if r == '\t' {
			n += 4
		} else {
			n++
		}
	}
	return n
}

func minim(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var invalidFileRe = regexp.MustCompile(`[\\/:*?"<>|]+`)

func sanitizeFileName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return invalidFileRe.ReplaceAllString(s, "_")
}

var invalidSheetRe = regexp.MustCompile(`[\\/:*?\[\]]+`)

func sanitizeSheetName(s string) string {
	return invalidSheetRe.ReplaceAllString(s, "_")
}
