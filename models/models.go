package models

// HistoryEntry представляет выполненное вычисление
type HistoryEntry struct {
	ID         int    `json:"id"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Timestamp  string `json:"timestamp"`
}

// Имена тем, известные оболочкам UI
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Palette представляет цвета одной темы, сгруппированные по ролям
// виджетов: оболочка красит кнопки, панели и дисплей напрямую, не
// разбирая типы элементов на ходу
type Palette struct {
	Background  string `json:"background"`
	Frame       string `json:"frame"`
	Button      string `json:"button"`
	ButtonText  string `json:"buttonText"`
	DisplayBg   string `json:"displayBg"`
	DisplayText string `json:"displayText"`
}

// Palettes - встроенные светлая и тёмная цветовые схемы
var Palettes = map[string]Palette{
	ThemeLight: {
		Background:  "#f3f6fb",
		Frame:       "#ffffff",
		Button:      "#eff3f8",
		ButtonText:  "#0b1220",
		DisplayBg:   "#e9eef8",
		DisplayText: "#0b1220",
	},
	ThemeDark: {
		Background:  "#0f1724",
		Frame:       "#0b1220",
		Button:      "#192233",
		ButtonText:  "#e6eef7",
		DisplayBg:   "#0b1220",
		DisplayText: "#e6eef7",
	},
}

// ValidTheme - проверка, что имя темы известно
func ValidTheme(name string) bool {
	_, ok := Palettes[name]
	return ok
}
