package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to splatdocs! Let's configure your docs server.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Default language.
	langPrompt := promptui.Select{
		Label: "Default language",
		Items: []string{"es (Español)", "en (English)"},
	}
	langIdx, _, err := langPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("language selection: %w", err)
	}
	cfg.DefaultLanguage = []string{"es", "en"}[langIdx]

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 3. Session store.
	storePrompt := promptui.Select{
		Label: "Where should visitor navigation state be kept?",
		Items: []string{
			"memory: lost on restart",
			"sqlite: persisted to a local database",
		},
	}
	storeIdx, _, err := storePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("session store selection: %w", err)
	}
	cfg.Session.Store = []SessionBackend{SessionMemory, SessionSQLite}[storeIdx]

	if cfg.Session.Store == SessionSQLite {
		dbPrompt := promptui.Prompt{
			Label:   "SQLite database path",
			Default: cfg.Session.DBPath,
		}
		if cfg.Session.DBPath, err = dbPrompt.Run(); err != nil {
			return nil, fmt.Errorf("db path: %w", err)
		}
	}

	// 4. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the static site and search index",
		Default: cfg.OutputDir,
	}
	if cfg.OutputDir, err = outputPrompt.Run(); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 5. Expanded parts.
	expandedPrompt := promptui.Prompt{
		Label:   "Sidebar parts expanded by default (comma-separated globs)",
		Default: strings.Join(cfg.ExpandedParts, ","),
	}
	expandedStr, err := expandedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("expanded parts: %w", err)
	}
	cfg.ExpandedParts = splitAndTrim(expandedStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	if cfg.Session.Secret == "" {
		fmt.Printf("Note: set %sSESSION__SECRET to keep visitor cookies valid across restarts.\n", EnvPrefix)
	}
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, token := range strings.Split(s, ",") {
		if token = strings.TrimSpace(token); token != "" {
			result = append(result, token)
		}
	}
	return result
}
