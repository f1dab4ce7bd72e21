package evaluator

import (
	"errors"
	"math"
)

// mathFunc - одна вызываемая запись разрешённого набора символов
type mathFunc struct {
	minArgs int
	maxArgs int
	call    func(args []float64) (float64, error)
}

// defaultFunctions - замкнутый набор функций, доступных выражению.
// Проверки области определения живут здесь, чтобы ошибка называла
// настоящую причину; всё, что функция пропустила, ловит проверка на
// неконечный результат в callNode.
func defaultFunctions() map[string]mathFunc {
	return map[string]mathFunc{
		"sin": {1, 1, func(a []float64) (float64, error) { return math.Sin(a[0]), nil }},
		"cos": {1, 1, func(a []float64) (float64, error) { return math.Cos(a[0]), nil }},
		"tan": {1, 1, func(a []float64) (float64, error) { return math.Tan(a[0]), nil }},
		"asin": {1, 1, func(a []float64) (float64, error) {
			if a[0] < -1 || a[0] > 1 {
				return 0, errors.New("аргумент asin вне отрезка [-1, 1]")
			}
			return math.Asin(a[0]), nil
		}},
		"acos": {1, 1, func(a []float64) (float64, error) {
			if a[0] < -1 || a[0] > 1 {
				return 0, errors.New("аргумент acos вне отрезка [-1, 1]")
			}
			return math.Acos(a[0]), nil
		}},
		"atan": {1, 1, func(a []float64) (float64, error) { return math.Atan(a[0]), nil }},
		"sqrt": {1, 1, func(a []float64) (float64, error) {
			if a[0] < 0 {
				return 0, errors.New("корень из отрицательного числа")
			}
			return math.Sqrt(a[0]), nil
		}},
		"pow": {2, 2, func(a []float64) (float64, error) { return math.Pow(a[0], a[1]), nil }},
		// log(x) - натуральный логарифм, log(x, base) - по заданному
		// основанию
		"log": {1, 2, func(a []float64) (float64, error) {
			if a[0] <= 0 {
				return 0, errors.New("логарифм неположительного числа")
			}
			if len(a) == 2 {
				if a[1] <= 0 || a[1] == 1 {
					return 0, errors.New("некорректное основание логарифма")
				}
				return math.Log(a[0]) / math.Log(a[1]), nil
			}
			return math.Log(a[0]), nil
		}},
		"ln": {1, 1, func(a []float64) (float64, error) {
			if a[0] <= 0 {
				return 0, errors.New("логарифм неположительного числа")
			}
			return math.Log(a[0]), nil
		}},
		"log10": {1, 1, func(a []float64) (float64, error) {
			if a[0] <= 0 {
				return 0, errors.New("логарифм неположительного числа")
			}
			return math.Log10(a[0]), nil
		}},
		"exp": {1, 1, func(a []float64) (float64, error) { return math.Exp(a[0]), nil }},
		"abs": {1, 1, func(a []float64) (float64, error) { return math.Abs(a[0]), nil }},
		// round(x) округляет половину к чётному, round(x, digits) - до
		// заданного числа десятичных знаков
		"round": {1, 2, func(a []float64) (float64, error) {
			if len(a) == 2 {
				if a[1] != math.Trunc(a[1]) {
					return 0, errors.New("число знаков в round должно быть целым")
				}
				shift := math.Pow(10, a[1])
				return math.RoundToEven(a[0]*shift) / shift, nil
			}
			return math.RoundToEven(a[0]), nil
		}},
		// Числовые приведения, оставлены для совместимости ввода: int
		// отбрасывает дробную часть, float здесь тождественна
		"int":   {1, 1, func(a []float64) (float64, error) { return math.Trunc(a[0]), nil }},
		"float": {1, 1, func(a []float64) (float64, error) { return a[0], nil }},
	}
}

// defaultConstants - именованные константы, доступные выражению
func defaultConstants() map[string]float64 {
	return map[string]float64{
		"pi": math.Pi,
		"e":  math.E,
	}
}
