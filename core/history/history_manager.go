package history

import (
	"strings"
	"sync"
	"time"

	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/persistence"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/models"
)

// HistoryManager - история вычислений поверх PersistenceManager: каждая
// запись сразу уходит в JSON файл. Мьютекс закрывает цикл
// загрузка-изменение-сохранение от параллельных веб-сессий.
type HistoryManager struct {
	persistence *persistence.PersistenceManager
	maxHistory  int
	mu          sync.Mutex
}

func NewHistoryManager(p *persistence.PersistenceManager) *HistoryManager {
	return &HistoryManager{
		persistence: p,
		maxHistory:  100,
	}
}

func NewHistoryManagerWithLimit(p *persistence.PersistenceManager, maxHistory int) *HistoryManager {
	return &HistoryManager{
		persistence: p,
		maxHistory:  maxHistory,
	}
}

// AddCalculation - добавление вычисления в историю с сохранением в JSON
func (hm *HistoryManager) AddCalculation(expression, result string) {
	hm.mu.Lock()
	defer hm.mu.Unlock()

	data := hm.persistence.LoadData()
	if data == nil {
		data = &persistence.CalculatorData{
			History: make([]models.HistoryEntry, 0),
		}
	}

	entry := models.HistoryEntry{
		Expression: expression,
		Result:     result,
		Timestamp:  time.Now().Format(time.RFC3339),
		ID:         len(data.History) + 1,
	}

	data.History = append(data.History, entry)

	// Ограничиваем размер истории
	if len(data.History) > hm.maxHistory {
		data.History = data.History[len(data.History)-hm.maxHistory:]
	}

	hm.persistence.SaveData(data)
}

// GetHistory - получение последних записей истории
func (hm *HistoryManager) GetHistory(limit int) []models.HistoryEntry {
	hm.mu.Lock()
	defer hm.mu.Unlock()

	return hm.persistence.GetRecentHistory(limit)
}

// DetailedHistoryEntry - запись истории с форматированным временем
type DetailedHistoryEntry struct {
	ID         int    `json:"id"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Timestamp  string `json:"timestamp"`
	Time       string `json:"time"`
}

// GetDetailedHistory - получение истории с человекочитаемым временем
func (hm *HistoryManager) GetDetailedHistory(limit int) []DetailedHistoryEntry {
	history := hm.GetHistory(limit)
	detailed := make([]DetailedHistoryEntry, len(history))

	for i, entry := range history {
		formattedTime := "unknown"
		if entry.Timestamp != "" {
			if t, err := time.Parse(time.RFC3339, entry.Timestamp); err == nil {
				formattedTime = t.Format("2006-01-02 15:04:05")
			}
		}

		detailed[i] = DetailedHistoryEntry{
			ID:         entry.ID,
			Expression: entry.Expression,
			Result:     entry.Result,
			Timestamp:  entry.Timestamp,
			Time:       formattedTime,
		}
	}

	return detailed
}

// ClearHistory - очистка всей истории
func (hm *HistoryManager) ClearHistory() bool {
	hm.mu.Lock()
	defer hm.mu.Unlock()

	return hm.persistence.ClearHistory()
}

// SearchHistory - поиск по выражениям и результатам
func (hm *HistoryManager) SearchHistory(keyword string) []models.HistoryEntry {
	history := hm.GetHistory(hm.maxHistory)
	results := make([]models.HistoryEntry, 0)

	lowered := strings.ToLower(keyword)
	for _, entry := range history {
		if strings.Contains(strings.ToLower(entry.Expression), lowered) ||
			strings.Contains(strings.ToLower(entry.Result), lowered) {
			results = append(results, entry)
		}
	}

	return results
}

// GetHistoryCount - получение количества записей в истории
func (hm *HistoryManager) GetHistoryCount() int {
	hm.mu.Lock()
	defer hm.mu.Unlock()

	data := hm.persistence.LoadData()
	if data == nil {
		return 0
	}
	return len(data.History)
}
