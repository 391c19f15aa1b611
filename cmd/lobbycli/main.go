package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hilthontt/lobbycli/internal/api"
	"github.com/hilthontt/lobbycli/internal/infrastructure/configs"
	"github.com/hilthontt/lobbycli/internal/infrastructure/logging"
	"github.com/hilthontt/lobbycli/internal/tui"
)

func main() {
	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		FilePath:   cfg.Log.FilePath,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	logger.Info(logging.General, logging.Startup, "starting lobbycli", map[logging.ExtraKey]any{
		logging.AppName: "lobbycli",
		logging.Path:    cfg.Server.BaseURL,
	})

	client := api.NewClient(api.WithBaseURL(cfg.Server.BaseURL))

	identity, err := client.WhoAmI(context.Background())
	switch {
	case errors.Is(err, api.ErrUnauthenticated):
		fmt.Printf("Not logged in. Open %s in a browser, then run lobbycli again.\n", client.LoginURL())
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "cannot reach lobby server: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(lipgloss.DefaultRenderer(), cfg, client, logger, identity.Name)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}
