package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/evaluator"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/history"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/models"
)

// Session - состояние одного окна калькулятора: набираемое выражение и
// выбранная тема. Каждая вкладка браузера и каждый REPL получают свою
// сессию; вычисления чистые, сессия меняет только собственный текст.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu    sync.Mutex
	expr  string
	theme string

	eval *evaluator.Evaluator
	hist *history.HistoryManager
}

// Press - дописывание токена кнопки или клавиши к выражению
func (s *Session) Press(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expr += token
}

// Backspace - удаление последнего символа выражения
func (s *Session) Backspace() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expr == "" {
		return
	}
	runes := []rune(s.expr)
	s.expr = string(runes[:len(runes)-1])
}

// Clear - сброс выражения
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expr = ""
}

// SetExpression - замена выражения целиком, для синхронизации с полем
// ввода клиента
func (s *Session) SetExpression(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expr = text
}

// Expression - текущий текст выражения
func (s *Session) Expression() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expr
}

// Preview - живой предпросмотр результата. Любая ошибка гасится в
// пустую строку: пока пользователь набирает, выражение почти всегда
// недописано, и это не повод для диалога об ошибке. В историю
// предпросмотр не пишет.
func (s *Session) Preview() string {
	s.mu.Lock()
	expr := s.expr
	s.mu.Unlock()

	value, err := s.eval.Evaluate(expr)
	if err != nil {
		return ""
	}
	return evaluator.FormatResult(value)
}

// Commit - вычисление по кнопке "равно". При успехе выражение
// замещается отформатированным результатом и вычисление попадает в
// историю; при ошибке выражение не трогается, чтобы пользователь мог
// его исправить.
func (s *Session) Commit() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := s.eval.Evaluate(s.expr)
	if err != nil {
		return "", err
	}

	formatted := evaluator.FormatResult(value)
	if strings.TrimSpace(s.expr) != "" && s.hist != nil {
		s.hist.AddCalculation(s.expr, formatted)
	}
	s.expr = formatted

	return formatted, nil
}

// Theme - имя текущей темы сессии
func (s *Session) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.theme
}

// Palette - палитра текущей темы
func (s *Session) Palette() models.Palette {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.Palettes[s.theme]
}

// SetTheme - установка темы по имени
func (s *Session) SetTheme(name string) error {
	if !models.ValidTheme(name) {
		return fmt.Errorf("неизвестная тема %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = name
	return nil
}

// ToggleTheme - переключение светлой и тёмной темы, возвращает новую
func (s *Session) ToggleTheme() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.theme == models.ThemeDark {
		s.theme = models.ThemeLight
	} else {
		s.theme = models.ThemeDark
	}
	return s.theme
}
