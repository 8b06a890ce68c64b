package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	zone "github.com/lrstanley/bubblezone"

	"codemanager-ui/internal/api"
	"codemanager-ui/internal/chat"
	"codemanager-ui/internal/config"
	"codemanager-ui/internal/history"
	"codemanager-ui/internal/tui"
)

// setupDebugLog sends the stdlib logger to a file; stdout belongs to the TUI.
func setupDebugLog() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	logPath := filepath.Join(home, ".config", "codemanager-ui", "debug.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	setupDebugLog()
	zone.NewGlobal()

	// Optional .env next to the working directory; env overrides config.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.GraphBaseURL)

	session, err := chat.NewSession(history.NewFileStore(cfg.HistoryPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	m := tui.NewModel(cfg, client, session)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
