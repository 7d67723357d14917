package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
)

const (
	envBackend = "QUICKNOTES_BACKEND"
	envPath    = "QUICKNOTES_PATH"
	envFormat  = "QUICKNOTES_FORMAT"
)

type ColorConfig struct {
	TitleBg       int `json:"title_bg"`
	TitleFg       int `json:"title_fg"`
	StatusBg      int `json:"status_bg"`
	StatusFg      int `json:"status_fg"`
	BorderColor   int `json:"border_color"`
	SelectedFg    int `json:"selected_fg"`
	DimFg         int `json:"dim_fg"`
	TagBarBg      int `json:"tag_bar_bg"`
	TagBarFg      int `json:"tag_bar_fg"`
	TagSelectedBg int `json:"tag_selected_bg"`
	TagSelectedFg int `json:"tag_selected_fg"`
	ErrorFg       int `json:"error_fg"`
}

// StoreConfig selects where and how notes are persisted.
type StoreConfig struct {
	Backend string `json:"backend"` // file, sqlite or memory
	Path    string `json:"path"`
	Format  string `json:"format"` // json or yaml
	Key     string `json:"key"`
}

type Config struct {
	Store  StoreConfig `json:"store"`
	Colors ColorConfig `json:"colors"`
}

func getConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "quicknotes")
}

func getConfigPath() string {
	return filepath.Join(getConfigDir(), "config.json")
}

func getDefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		Store: StoreConfig{
			Backend: "file",
			Path:    filepath.Join(homeDir, "Documents", "quicknotes"),
			Format:  "json",
			Key:     DefaultStoreKey,
		},
		Colors: ColorConfig{
			TitleBg:       4,   // Blue
			TitleFg:       15,  // Bright White
			StatusBg:      8,   // Dark Gray
			StatusFg:      7,   // Light Gray
			BorderColor:   12,  // Bright Blue
			SelectedFg:    11,  // Bright Yellow
			DimFg:         245, // Gray
			TagBarBg:      235, // Dark Gray
			TagBarFg:      250, // Light Gray
			TagSelectedBg: 12,  // Bright Blue
			TagSelectedFg: 15,  // Bright White
			ErrorFg:       9,   // Bright Red
		},
	}
}

// loadConfig reads the config file at path. A missing file is created with
// defaults; an unparsable one is reported and replaced by defaults in memory.
func loadConfig(path string) Config {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := getDefaultConfig()
		if err := saveConfig(path, cfg); err != nil {
			slog.Warn("could not write default config", "path", path, "error", err)
		}
		return cfg
	}
	if err != nil {
		slog.Warn("could not read config, using defaults", "path", path, "error", err)
		return getDefaultConfig()
	}

	cfg := getDefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		slog.Warn("error parsing config, using defaults", "path", path, "error", err)
		return getDefaultConfig()
	}
	return cfg
}

func saveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0644)
}

// applyEnv overlays values from <dir>/.env and then from the process environment.
func applyEnv(cfg *Config, dir string) error {
	vars := map[string]string{}
	dotenv, err := godotenv.Read(filepath.Join(dir, ".env"))
	switch {
	case err == nil:
		vars = dotenv
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("read .env: %w", err)
	}
	for _, name := range []string{envBackend, envPath, envFormat} {
		if v := os.Getenv(name); v != "" {
			vars[name] = v
		}
	}

	if v := vars[envBackend]; v != "" {
		cfg.Store.Backend = v
	}
	if v := vars[envPath]; v != "" {
		cfg.Store.Path = v
	}
	if v := vars[envFormat]; v != "" {
		cfg.Store.Format = v
	}
	return nil
}

type styles struct {
	title     lipgloss.Style
	status    lipgloss.Style
	border    lipgloss.Style
	selected  lipgloss.Style
	dim       lipgloss.Style
	tagBar    lipgloss.Style
	tag       lipgloss.Style
	tagActive lipgloss.Style
	tagCursor lipgloss.Style
	err       lipgloss.Style
	label     lipgloss.Style
}

func color(i int) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("%d", i))
}

func newStyles(c ColorConfig) styles {
	return styles{
		title: lipgloss.NewStyle().
			Background(color(c.TitleBg)).
			Foreground(color(c.TitleFg)).
			Padding(0, 1),
		status: lipgloss.NewStyle().
			Background(color(c.StatusBg)).
			Foreground(color(c.StatusFg)),
		border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(color(c.BorderColor)),
		selected: lipgloss.NewStyle().
			Foreground(color(c.SelectedFg)).
			Bold(true),
		dim: lipgloss.NewStyle().Foreground(color(c.DimFg)),
		tagBar: lipgloss.NewStyle().
			Background(color(c.TagBarBg)).
			Foreground(color(c.TagBarFg)).
			Padding(0, 1),
		tag: lipgloss.NewStyle().
			Background(color(c.TagBarBg)).
			Foreground(color(c.TagBarFg)).
			Padding(0, 1),
		tagActive: lipgloss.NewStyle().
			Background(color(c.TagSelectedBg)).
			Foreground(color(c.TagSelectedFg)).
			Bold(true).
			Padding(0, 1),
		tagCursor: lipgloss.NewStyle().Underline(true),
		err:       lipgloss.NewStyle().Foreground(color(c.ErrorFg)).Bold(true),
		label:     lipgloss.NewStyle().Bold(true),
	}
}
