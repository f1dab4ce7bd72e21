package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/skratchdot/open-golang/open"

	"github.com/Ar10Ansari/BASIC-CALCULATOR/config"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/evaluator"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/history"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/persistence"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/session"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/models"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/ui"
)

func main() {
	cliMode := flag.Bool("cli", false, "запустить консольный интерфейс вместо веб-сервера")
	flag.Parse()

	cfg := config.Load()

	// Инициализация хранилища и истории
	pm := persistence.NewPersistenceManagerWithFile(cfg.DataFile)
	hm := history.NewHistoryManagerWithLimit(pm, cfg.HistoryLimit)

	// Тема из сохраненных данных, иначе из конфигурации
	theme := pm.LoadTheme()
	if !models.ValidTheme(theme) {
		theme = cfg.DefaultTheme
	}

	sessions := session.NewManager(evaluator.NewEvaluator(), hm)
	sessions.SetDefaultTheme(theme)

	if *cliMode {
		console := ui.NewConsoleInterface(sessions, hm, pm)
		if err := console.Run(); err != nil {
			log.Fatal(err)
		}
		return
	}

	web := ui.NewWebInterface(sessions, hm, pm, cfg)

	calcURL := "http://localhost" + cfg.Addr

	if cfg.OpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			err := open.Run(calcURL)
			if err != nil {
				log.Printf("❌ Не удалось открыть браузер: %v", err)
			}
		}()
	}

	fmt.Printf("🌐 Калькулятор открывается в браузере: %s\n", calcURL)
	fmt.Println("Нажмите Ctrl+C для выхода.")

	err := web.Start(cfg.Addr)
	if err != nil {
		log.Fatal(err)
	}
}
