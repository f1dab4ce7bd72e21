package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Ar10Ansari/BASIC-CALCULATOR/models"
)

// CalculatorData - структура для хранения всех данных: выбранная тема
// и история вычислений
type CalculatorData struct {
	Theme   string                `json:"theme"`
	History []models.HistoryEntry `json:"history"`
}

type PersistenceManager struct {
	dataFile string
}

func NewPersistenceManager() *PersistenceManager {
	return &PersistenceManager{
		dataFile: "calculator_data.json",
	}
}

func NewPersistenceManagerWithFile(dataFile string) *PersistenceManager {
	return &PersistenceManager{
		dataFile: dataFile,
	}
}

// SaveData - сохранение данных в JSON файл
func (pm *PersistenceManager) SaveData(data *CalculatorData) bool {
	// Добавляем timestamp к каждой записи истории
	timestampedHistory := make([]models.HistoryEntry, len(data.History))
	for i, entry := range data.History {
		if entry.Timestamp == "" {
			entry.Timestamp = time.Now().Format(time.RFC3339)
		}
		if entry.ID == 0 {
			entry.ID = i + 1
		}
		timestampedHistory[i] = entry
	}
	data.History = timestampedHistory

	file, err := os.Create(pm.dataFile)
	if err != nil {
		fmt.Printf("Ошибка сохранения: %v\n", err)
		return false
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(data); err != nil {
		fmt.Printf("Ошибка кодирования JSON: %v\n", err)
		return false
	}

	return true
}

// LoadData - загрузка данных из JSON файла
func (pm *PersistenceManager) LoadData() *CalculatorData {
	file, err := os.Open(pm.dataFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Файл не существует - возвращаем пустые данные
			return &CalculatorData{
				History: make([]models.HistoryEntry, 0),
			}
		}
		fmt.Printf("Ошибка загрузки: %v\n", err)
		return nil
	}
	defer file.Close()

	var data CalculatorData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		fmt.Printf("Ошибка декодирования JSON: %v\n", err)
		return nil
	}

	pm.normalizeHistory(&data)

	return &data
}

// normalizeHistory - чистка загруженной истории: записи без выражения
// выбрасываются, пустые timestamp и ID заполняются. Файл могли править
// руками.
func (pm *PersistenceManager) normalizeHistory(data *CalculatorData) {
	if len(data.History) == 0 {
		return
	}

	newHistory := make([]models.HistoryEntry, 0, len(data.History))
	for i, entry := range data.History {
		if entry.Expression == "" {
			continue
		}
		if entry.Timestamp == "" {
			entry.Timestamp = time.Now().Format(time.RFC3339)
		}
		if entry.ID == 0 {
			entry.ID = i + 1
		}
		newHistory = append(newHistory, entry)
	}
	data.History = newHistory
}

// GetRecentHistory - получение последних N записей истории
func (pm *PersistenceManager) GetRecentHistory(limit int) []models.HistoryEntry {
	data := pm.LoadData()
	if data == nil || len(data.History) == 0 {
		return []models.HistoryEntry{}
	}

	if limit <= 0 || limit > len(data.History) {
		// Возвращаем всю историю (копию)
		historyCopy := make([]models.HistoryEntry, len(data.History))
		copy(historyCopy, data.History)
		return historyCopy
	}

	// Возвращаем последние limit записей
	start := len(data.History) - limit
	return data.History[start:]
}

// ClearHistory - очистка истории
func (pm *PersistenceManager) ClearHistory() bool {
	data := pm.LoadData()
	if data == nil {
		data = &CalculatorData{
			History: make([]models.HistoryEntry, 0),
		}
	}

	data.History = []models.HistoryEntry{}
	return pm.SaveData(data)
}

// SaveTheme - сохранение только выбранной темы
func (pm *PersistenceManager) SaveTheme(theme string) bool {
	data := pm.LoadData()
	if data == nil {
		data = &CalculatorData{
			History: make([]models.HistoryEntry, 0),
		}
	}

	data.Theme = theme
	return pm.SaveData(data)
}

// LoadTheme - загрузка сохранённой темы; пустая строка, если тема ещё
// не выбиралась
func (pm *PersistenceManager) LoadTheme() string {
	data := pm.LoadData()
	if data == nil {
		return ""
	}
	return data.Theme
}
