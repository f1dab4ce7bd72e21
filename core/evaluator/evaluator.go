package evaluator

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Таксономия ошибок. Слои UI различают их через errors.Is: предпросмотр
// гасит любую из них в пустую строку, команда "равно" показывает ошибку
// и оставляет выражение для исправления.
var (
	// ErrInvalidExpression - в исходном тексте есть недопустимый символ
	ErrInvalidExpression = errors.New("выражение содержит недопустимые символы")
	// ErrUnsafeExpression - ввод похож на попытку выполнить код
	ErrUnsafeExpression = errors.New("небезопасное выражение")
	// ErrEvaluation - синтаксическая ошибка, неизвестное имя,
	// арифметический сбой или неконечный результат
	ErrEvaluation = errors.New("ошибка вычисления выражения")
)

// allowedChars - белый список символов помимо ASCII-букв и '_'.
// Буквы пропускаются целиком, чтобы можно было набирать имена функций;
// имя, которое ни во что не резолвится, отклоняется позже, на этапе
// вычисления, а не здесь.
const allowedChars = "0123456789+-*/().%^, \t\n"

// unsafeTokens - подстроки, по которым нормализованное выражение
// отклоняется как попытка выполнения кода
var unsafeTokens = []string{"__", "import", "exec", "eval"}

// Evaluator - вычислитель арифметических выражений с замкнутым набором
// математических функций и констант. Имена резолвятся только через
// таблицы ниже, никакого внешнего окружения нет. После создания таблицы
// не меняются, поэтому один Evaluator безопасен для параллельного
// использования.
type Evaluator struct {
	operators map[string]func(float64, float64) (float64, error)
	functions map[string]mathFunc
	constants map[string]float64
}

func NewEvaluator() *Evaluator {
	calc := &Evaluator{
		operators: make(map[string]func(float64, float64) (float64, error)),
		functions: defaultFunctions(),
		constants: defaultConstants(),
	}

	// Инициализация операторов
	calc.operators["+"] = func(a, b float64) (float64, error) { return a + b, nil }
	calc.operators["-"] = func(a, b float64) (float64, error) { return a - b, nil }
	calc.operators["*"] = func(a, b float64) (float64, error) { return a * b, nil }
	calc.operators["/"] = func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, errors.New("деление на ноль")
		}
		return a / b, nil
	}
	calc.operators["%"] = func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, errors.New("деление по модулю на ноль")
		}
		return math.Mod(a, b), nil
	}
	calc.operators["^"] = func(a, b float64) (float64, error) { return math.Pow(a, b), nil }

	return calc
}

// Evaluate - полный конвейер над сырым вводом пользователя: белый список
// символов, нормализация, чёрный список токенов, разбор, обход дерева.
// Пустой или пробельный ввод вычисляется в ноль и ошибкой не считается.
func (e *Evaluator) Evaluate(text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	if err := checkAllowed(text); err != nil {
		return 0, err
	}

	prepared := Normalize(text)

	if err := checkUnsafe(prepared); err != nil {
		return 0, err
	}

	root, err := parse(prepared)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	result, err := root.eval(e)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	// Переполнение и неопределённые формы не должны попадать на дисплей
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("%w: результат не является конечным числом", ErrEvaluation)
	}

	return result, nil
}

// checkAllowed - проверка каждого символа сырого ввода по белому списку
func checkAllowed(text string) error {
	for _, r := range text {
		if r > 127 || (!strings.ContainsRune(allowedChars, r) && !isLetterRune(r)) {
			return fmt.Errorf("%w: недопустимый символ %q", ErrInvalidExpression, r)
		}
	}
	return nil
}

// checkUnsafe - поиск запрещённых подстрок в нормализованном выражении
func checkUnsafe(prepared string) error {
	for _, tok := range unsafeTokens {
		if strings.Contains(prepared, tok) {
			return fmt.Errorf("%w: содержит %q", ErrUnsafeExpression, tok)
		}
	}
	return nil
}

func isLetterRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}
