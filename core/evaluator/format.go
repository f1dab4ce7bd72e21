package evaluator

import (
	"math"
	"strconv"
	"strings"
)

// FormatResult - представление значения так, как его показывает дисплей:
// целые результаты теряют десятичную точку, остальные обрезаются до
// десяти знаков после запятой без хвостовых нулей.
func FormatResult(value float64) string {
	if value == 0 {
		return "0"
	}
	if value == math.Trunc(value) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	s := strconv.FormatFloat(value, 'f', 10, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
