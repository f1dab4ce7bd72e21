package evaluator

import (
	"regexp"
	"strings"
)

// percentRe - числовой литерал, за которым идёт '%', возможно через
// пробелы. Подходит только литерал: после ")" или имени константы '%'
// остаётся оператором взятия остатка.
var percentRe = regexp.MustCompile(`(\d+(\.\d+)?)\s*%`)

// Normalize - приведение пользовательского ввода к канонической форме:
// литерал с процентом превращается в '(литерал/100)', а степень в
// записи '**' сворачивается в оператор '^'. Функция чистая и
// идемпотентная: повторный проход ничего не находит.
func Normalize(expr string) string {
	expr = percentRe.ReplaceAllString(expr, `(${1}/100)`)
	expr = strings.ReplaceAll(expr, "**", "^")
	return expr
}
