package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mulino/flowstate/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)

	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.Account.Email = promptValue(reader, "Account email", cfg.Account.Email)
	cfg.Remote.BaseURL = promptValue(reader, "Remote base URL (empty for local storage)", cfg.Remote.BaseURL)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.Grid.StartHour = promptInt(reader, "Grid start hour", cfg.Grid.StartHour)
	cfg.Grid.EndHour = promptInt(reader, "Grid end hour", cfg.Grid.EndHour)
	cfg.Grid.SnapMinutes = promptInt(reader, "Snap minutes", cfg.Grid.SnapMinutes)
	cfg.UI.Theme = promptValue(reader, "UI theme (auto, dark, light)", cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[account]")
	fmt.Printf("  email           = %s\n", cfg.Account.Email)
	fmt.Println("\n[remote]")
	fmt.Printf("  base_url        = %s\n", cfg.Remote.BaseURL)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path         = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[grid]")
	fmt.Printf("  start_hour      = %d\n", cfg.Grid.StartHour)
	fmt.Printf("  end_hour        = %d\n", cfg.Grid.EndHour)
	fmt.Printf("  snap_minutes    = %d\n", cfg.Grid.SnapMinutes)
	fmt.Printf("  pixels_per_hour = %d\n", cfg.Grid.PixelsPerHour)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme           = %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		input := promptValue(reader, label, strconv.Itoa(current))
		value, err := strconv.Atoi(input)
		if err == nil {
			return value
		}
		fmt.Printf("  %q is not a number\n", input)
	}
}
