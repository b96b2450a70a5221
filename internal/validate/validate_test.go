package validate

import (
	"strings"
	"testing"
)

func TestEmailValid(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"user@gmail.com", true},
		{"u.ser+tag@sub.domain.org", true},
		{"user@example.com", false}, // заблокированный домен
		{"user@test.com", false},
		{"user@EXAMPLE.com", false}, // регистр домена не важен
		{"invalid-email", false},
		{"@gmail.com", false},
		{"user@", false},
		{"", false},
		{strings.Repeat("a", 310) + "@very-long-domain.com", false}, // длиннее 320
	}
	for _, c := range cases {
		if got := EmailValid(c.email); got != c.want {
			t.Errorf("EmailValid(%q) = %v, ожидали %v", c.email, got, c.want)
		}
	}
}

func TestIsValidGrade(t *testing.T) {
	valid := []any{0, 5, 10, int64(7), float64(5), float64(0), float64(10)}
	for _, v := range valid {
		if !IsValidGrade(v) {
			t.Errorf("IsValidGrade(%v) = false, ожидали true", v)
		}
	}

	invalid := []any{-1, 11, int64(-5), float64(5.5), float64(10.1), "5", nil,
		[]int{5}, map[string]int{"grade": 5}, true}
	for _, v := range invalid {
		if IsValidGrade(v) {
			t.Errorf("IsValidGrade(%v) = true, ожидали false", v)
		}
	}
}

func TestGradeValue(t *testing.T) {
	if GradeValue(7) != 7 || GradeValue(int64(3)) != 3 || GradeValue(float64(10)) != 10 {
		t.Error("GradeValue вернул неверное значение")
	}
}
