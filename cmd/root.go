// Package cmd wires the command line interface. The root command
// starts the interactive record browser; subcommands manage the local
// database.
package cmd

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pantrycrm/internal/config"
	"pantrycrm/internal/crm"
	"pantrycrm/internal/domain"
	"pantrycrm/internal/eventbus"
	"pantrycrm/internal/storage/sqlite"
	"pantrycrm/internal/ui"
)

var (
	flagDBPath     string
	flagConfigPath string
	flagKind       string
)

var rootCmd = &cobra.Command{
	Use:   "pantrycrm",
	Short: "Terminal CRM with bulk record actions",
	Long: `pantrycrm is a keyboard-driven CRM record browser. Select records
across organizations, contacts, products, opportunities and
interactions, then run bulk actions against the selection: delete,
archive, assign segment, export to CSV, or advance the pipeline stage.`,
	RunE: runBrowser,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "path to the SQLite database (defaults to the configured path)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to the config file")
	rootCmd.Flags().StringVar(&flagKind, "kind", "", "record tab to open first (organization, contact, product, opportunity, interaction)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBrowser(cmd *cobra.Command, args []string) error {
	setupLogging()

	bus := eventbus.New()
	cfg := loadConfig(bus)

	if flagKind != "" {
		kind := domain.RecordKind(flagKind)
		valid := false
		for _, k := range domain.Kinds() {
			if k == kind {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown record kind %q", flagKind)
		}
		cfg.DefaultKind = kind
	}

	db, err := sqlite.Open(databasePath(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	store := sqlite.NewStore(db)
	service := crm.NewService(store, bus)

	uiModel := ui.NewModel(cfg, service, bus)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Forward bus events to the UI
	for _, eventType := range []eventbus.EventType{
		eventbus.EventRecordsLoaded,
		eventbus.EventRecordsDeleted,
		eventbus.EventRecordsChanged,
		eventbus.EventBulkActionStarted,
		eventbus.EventBulkActionCompleted,
		eventbus.EventError,
	} {
		bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run UI: %w", err)
	}
	return nil
}

// setupLogging redirects the standard logger away from the terminal the
// UI is drawing on
func setupLogging() {
	logFile, err := os.OpenFile("pantrycrm.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(logFile)
}

func loadConfig(bus eventbus.EventBus) *config.Config {
	configSvc := config.NewConfigServiceWithBus(bus)

	if flagConfigPath != "" {
		if cfg, err := configSvc.LoadFromPath(flagConfigPath); err == nil {
			return cfg
		} else {
			log.Printf("Failed to load config from %s: %v", flagConfigPath, err)
		}
	}

	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}
	return cfg
}

func databasePath(cfg *config.Config) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.DatabasePath
}
