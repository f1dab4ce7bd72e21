package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/history"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/persistence"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/session"
)

// historyFile - файл истории ввода liner в домашнем каталоге
const historyFile = ".calculator_history"

// ConsoleInterface представляет консольный интерфейс
type ConsoleInterface struct {
	sessions *session.Manager
	history  *history.HistoryManager
	pers     *persistence.PersistenceManager
	session  *session.Session
}

// NewConsoleInterface создает новый консольный интерфейс
func NewConsoleInterface(sessions *session.Manager, hist *history.HistoryManager, pers *persistence.PersistenceManager) *ConsoleInterface {
	return &ConsoleInterface{
		sessions: sessions,
		history:  hist,
		pers:     pers,
		session:  sessions.Create(),
	}
}

// Run запускает главный цикл интерфейса
func (c *ConsoleInterface) Run() error {
	c.showWelcome()
	c.loadHistory()

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	// Загружаем историю ввода (по возможности)
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	// Основной цикл
	for {
		input, err := ln.Prompt("calc> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		ln.AppendHistory(input)

		// Проверяем команды выхода
		if input == "/quit" || input == "/exit" {
			break
		}

		c.processCommand(input)
	}

	fmt.Println("👋 До свидания!")
	return nil
}

// showWelcome показывает приветственное сообщение
func (c *ConsoleInterface) showWelcome() {
	fmt.Println("🧮 ═══════════════════════════════════════════")
	fmt.Println("   Настольный калькулятор")
	fmt.Println("═══════════════════════════════════════════")
	fmt.Println()
	fmt.Println("📚 Команды:")
	fmt.Println("  • Арифметика: 2 + 3 * 4, (10 + 5) / 2")
	fmt.Println("  • Степень: 2^10 или 2**10, проценты: 50%")
	fmt.Println("  • Функции: sin(pi/2), sqrt(16), log(8, 2)")
	fmt.Println("  • Константы: pi, e")
	fmt.Println("  • Просмотр: /history")
	fmt.Println("  • Оформление: /theme")
	fmt.Println("  • Справка: /help")
	fmt.Println("  • Выход: /quit или Ctrl+C")
	fmt.Println()
}

// loadHistory показывает последние вычисления прошлых запусков
func (c *ConsoleInterface) loadHistory() {
	entries := c.history.GetHistory(5)
	if len(entries) > 0 {
		fmt.Println("📜 Последние вычисления:")
		for i, entry := range entries {
			fmt.Printf("   %d. %s = %s\n", i+1, entry.Expression, entry.Result)
		}
		fmt.Println()
	}
}

// processCommand обрабатывает введенную строку
func (c *ConsoleInterface) processCommand(input string) {
	// Специальные команды
	switch {
	case input == "/history":
		c.showHistory()
		return
	case input == "/help":
		c.showHelp()
		return
	case input == "/theme":
		c.switchTheme()
		return
	case input == "/clear":
		c.clearScreen()
		return
	case input == "/clear-history" || input == "/clearhist":
		c.history.ClearHistory()
		fmt.Println("🗑️ История вычислений очищена")
		return
	}

	// Обычное выражение
	c.session.SetExpression(input)
	result, err := c.session.Commit()
	if err != nil {
		fmt.Printf("❌ Ошибка: %v\n", err)
		return
	}

	fmt.Printf("📊 = %s\n", result)
}

// switchTheme переключает тему и сохраняет выбор
func (c *ConsoleInterface) switchTheme() {
	name := c.session.ToggleTheme()
	c.pers.SaveTheme(name)
	c.sessions.SetDefaultTheme(name)

	p := c.session.Palette()
	fmt.Printf("🎨 Тема: %s\n", name)
	fmt.Printf("   Фон %s, кнопки %s, дисплей %s\n", p.Background, p.Button, p.DisplayBg)
}

// showHistory показывает историю вычислений
func (c *ConsoleInterface) showHistory() {
	entries := c.history.GetDetailedHistory(10)
	if len(entries) == 0 {
		fmt.Println("ℹ️ История вычислений пуста")
		return
	}

	fmt.Println("📜 История вычислений:")
	for _, entry := range entries {
		fmt.Printf("  %d. [%s] %s = %s\n", entry.ID, entry.Time, entry.Expression, entry.Result)
	}
	fmt.Println("\n💡 Команды: /clear-history - очистить историю")
}

// clearScreen очищает экран (эмуляция)
func (c *ConsoleInterface) clearScreen() {
	// Печатаем много пустых строк для "очистки"
	for i := 0; i < 50; i++ {
		fmt.Println()
	}
	fmt.Println("🧮 Экран очищен (история сохранена)")
}

// showHelp показывает подробную справку
func (c *ConsoleInterface) showHelp() {
	fmt.Println("📚 ═══════════════ СПРАВКА ═══════════════")
	fmt.Println()
	fmt.Println("🔢 АРИФМЕТИЧЕСКИЕ ОПЕРАЦИИ:")
	fmt.Println("  2 + 3 * 4           - базовые вычисления")
	fmt.Println("  (10 + 5) / 3        - скобки поддерживаются")
	fmt.Println("  2^10 или 2**10      - возведение в степень")
	fmt.Println("  (17)%5              - остаток от деления")
	fmt.Println("  50%                 - проценты: 50% это 0.5")
	fmt.Println()
	fmt.Println("🧮 ФУНКЦИИ И КОНСТАНТЫ:")
	fmt.Println("  sin(x), cos(x), tan(x), asin(x), acos(x), atan(x)")
	fmt.Println("  sqrt(16), pow(2, 10), abs(-5), exp(x)")
	fmt.Println("  log(x), log(x, осн), ln(x), log10(x)")
	fmt.Println("  round(2.5), round(pi, 2), int(3.9), float(4)")
	fmt.Println("  pi, e")
	fmt.Println()
	fmt.Println("👀 ПРОСМОТР ДАННЫХ:")
	fmt.Println("  /history            - показать историю вычислений")
	fmt.Println()
	fmt.Println("🗑️ УПРАВЛЕНИЕ ДАННЫМИ:")
	fmt.Println("  /clear-history      - очистить историю вычислений")
	fmt.Println("  /clear              - очистить экран")
	fmt.Println()
	fmt.Println("🎨 ОФОРМЛЕНИЕ:")
	fmt.Println("  /theme              - переключить светлую и тёмную тему")
	fmt.Println()
	fmt.Println("🔧 СИСТЕМНЫЕ КОМАНДЫ:")
	fmt.Println("  /help               - показать эту справку")
	fmt.Println("  /quit или /exit     - выход из программы")
	fmt.Println()
	fmt.Println("💡 ПРИМЕРЫ ИСПОЛЬЗОВАНИЯ:")
	fmt.Println("  calc> 2 + 2 * 2")
	fmt.Println("  calc> sin(pi/4)^2 + cos(pi/4)^2")
	fmt.Println("  calc> 200 * 15%")
	fmt.Println("  calc> /history")
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════")
}
