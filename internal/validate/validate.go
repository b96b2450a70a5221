// Package validate — чистые предикаты входных данных, общие для сервисов.
package validate

import (
	"math"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Домены, с которых не принимаем регистрацию (тестовые/примерные адреса).
var blockedDomains = map[string]struct{}{
	"example.com": {},
	"test.com":    {},
}

// EmailValid проверяет форму адреса, ограничение длины из RFC 3696 (320)
// и чёрный список доменов.
func EmailValid(email string) bool {
	if !emailRe.MatchString(email) {
		return false
	}
	if len(email) > 320 {
		return false
	}
	domain := email[strings.LastIndex(email, "@")+1:]
	if _, ok := blockedDomains[strings.ToLower(domain)]; ok {
		return false
	}
	return true
}

// IsValidGrade — проверка границ оценки до обращения к хранилищу.
// Принимаются только целочисленные значения в диапазоне [0, 10]:
// дробные числа, строки, nil, срезы и словари отклоняются по типу.
// JSON-числа приходят как float64, поэтому float с целым значением —
// это целое (5.0 — валидно, 5.5 — нет).
func IsValidGrade(v any) bool {
	switch g := v.(type) {
	case int:
		return inGradeRange(int64(g))
	case int64:
		return inGradeRange(g)
	case float64:
		if g != math.Trunc(g) {
			return false
		}
		return inGradeRange(int64(g))
	default:
		return false
	}
}

func inGradeRange(g int64) bool { return g >= 0 && g <= 10 }

// GradeValue приводит уже провалидированное значение к int.
// Вызывать только после IsValidGrade.
func GradeValue(v any) int {
	switch g := v.(type) {
	case int:
		return g
	case int64:
		return int(g)
	case float64:
		return int(g)
	default:
		return 0
	}
}
