package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/evaluator"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/history"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/models"
)

// Manager - реестр живых сессий по UUID. Вычислитель и история общие,
// текст выражения и тема у каждой сессии свои.
type Manager struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	eval         *evaluator.Evaluator
	hist         *history.HistoryManager
	defaultTheme string
}

func NewManager(eval *evaluator.Evaluator, hist *history.HistoryManager) *Manager {
	return &Manager{
		sessions:     make(map[string]*Session),
		eval:         eval,
		hist:         hist,
		defaultTheme: models.ThemeLight,
	}
}

// Create - новая сессия с темой по умолчанию
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		theme:     m.defaultTheme,
		eval:      m.eval,
		hist:      m.hist,
	}
	m.sessions[s.ID] = s
	return s
}

// Get - поиск сессии по идентификатору
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	return s, ok
}

// Remove - удаление сессии из реестра
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
}

// Count - число живых сессий
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// SetDefaultTheme - тема для новых сессий; неизвестные имена молча
// игнорируются, чтобы битый файл данных не ломал запуск
func (m *Manager) SetDefaultTheme(name string) {
	if !models.ValidTheme(name) {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.defaultTheme = name
}

// DefaultTheme - текущая тема для новых сессий
func (m *Manager) DefaultTheme() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.defaultTheme
}
