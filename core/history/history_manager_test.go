package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/persistence"
)

func setupTestHistory(t *testing.T) *HistoryManager {
	t.Helper()

	pm := persistence.NewPersistenceManagerWithFile(filepath.Join(t.TempDir(), "calculator_data.json"))
	return NewHistoryManager(pm)
}

func TestAddCalculation(t *testing.T) {
	hm := setupTestHistory(t)

	hm.AddCalculation("2+2", "4")
	hm.AddCalculation("50%", "0.5")

	if hm.GetHistoryCount() != 2 {
		t.Fatalf("Expected 2 entries, got %d", hm.GetHistoryCount())
	}

	entries := hm.GetHistory(10)
	if entries[0].Expression != "2+2" || entries[0].Result != "4" {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	if entries[1].Expression != "50%" || entries[1].Result != "0.5" {
		t.Errorf("Unexpected second entry: %+v", entries[1])
	}

	for i, entry := range entries {
		if entry.ID != i+1 {
			t.Errorf("Expected ID %d, got %d", i+1, entry.ID)
		}
		if _, err := time.Parse(time.RFC3339, entry.Timestamp); err != nil {
			t.Errorf("Entry %d has bad timestamp %q: %v", i, entry.Timestamp, err)
		}
	}
}

func TestHistoryLimit(t *testing.T) {
	pm := persistence.NewPersistenceManagerWithFile(filepath.Join(t.TempDir(), "calculator_data.json"))
	hm := NewHistoryManagerWithLimit(pm, 3)

	expressions := []string{"1+1", "2+2", "3+3", "4+4", "5+5"}
	results := []string{"2", "4", "6", "8", "10"}
	for i := range expressions {
		hm.AddCalculation(expressions[i], results[i])
	}

	entries := hm.GetHistory(10)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries after trim, got %d", len(entries))
	}

	// Остаются последние три
	if entries[0].Expression != "3+3" || entries[2].Expression != "5+5" {
		t.Errorf("Unexpected surviving entries: %+v", entries)
	}
}

func TestSearchHistory(t *testing.T) {
	hm := setupTestHistory(t)

	hm.AddCalculation("sin(pi/2)", "1")
	hm.AddCalculation("2+2", "4")
	hm.AddCalculation("sqrt(16)", "4")

	results := hm.SearchHistory("sin")
	if len(results) != 1 {
		t.Fatalf("Expected 1 match for sin, got %d", len(results))
	}
	if results[0].Expression != "sin(pi/2)" {
		t.Errorf("Unexpected match: %+v", results[0])
	}

	// Поиск без учёта регистра
	if len(hm.SearchHistory("SIN")) != 1 {
		t.Error("Expected case-insensitive search to match")
	}

	// Поиск и по результатам
	if len(hm.SearchHistory("4")) != 2 {
		t.Errorf("Expected 2 matches for result 4, got %d", len(hm.SearchHistory("4")))
	}

	if len(hm.SearchHistory("cos")) != 0 {
		t.Error("Expected no matches for cos")
	}
}

func TestClearHistory(t *testing.T) {
	hm := setupTestHistory(t)

	hm.AddCalculation("1+1", "2")
	hm.AddCalculation("2+2", "4")

	if !hm.ClearHistory() {
		t.Fatal("Expected ClearHistory to succeed")
	}

	if hm.GetHistoryCount() != 0 {
		t.Errorf("Expected empty history, got %d entries", hm.GetHistoryCount())
	}
	if len(hm.GetHistory(10)) != 0 {
		t.Error("Expected GetHistory to return nothing after clear")
	}
}

func TestGetDetailedHistory(t *testing.T) {
	hm := setupTestHistory(t)

	hm.AddCalculation("2^10", "1024")

	detailed := hm.GetDetailedHistory(10)
	if len(detailed) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(detailed))
	}

	entry := detailed[0]
	if entry.Expression != "2^10" || entry.Result != "1024" {
		t.Errorf("Unexpected entry: %+v", entry)
	}
	if entry.Time == "unknown" || entry.Time == "" {
		t.Errorf("Expected formatted time, got %q", entry.Time)
	}
	if _, err := time.Parse("2006-01-02 15:04:05", entry.Time); err != nil {
		t.Errorf("Time %q is not in expected format: %v", entry.Time, err)
	}
}
