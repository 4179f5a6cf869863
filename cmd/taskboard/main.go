package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/taskboard/internal/client"
	"github.com/example/taskboard/internal/config"
	"github.com/example/taskboard/internal/update"
)

func main() {
	config.LoadDotenv()
	cfg := config.LoadClient()

	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "taskboard")
		if err != nil {
			fmt.Fprintf(os.Stderr, "taskboard: open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	api := client.New(cfg.APIBaseURL, cfg.HTTPTimeout)
	program := tea.NewProgram(update.NewModel(api), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskboard failed: %v\n", err)
		os.Exit(1)
	}
}
