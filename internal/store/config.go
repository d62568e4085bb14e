package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Config is the per-user configuration at ~/.taskdeck/config.json.
type Config struct {
	// Backend selects the KV backend for new stores (sqlite|json).
	Backend string `json:"backend,omitempty"`
	// DefaultTab is the TUI tab shown when no saved state exists (deadlines|routines).
	DefaultTab string `json:"defaultTab,omitempty"`

	Reorder ReorderConfig `json:"reorder"`

	// Theme is light|dark|auto for the TUI palette.
	Theme string `json:"theme,omitempty"`
}

// ReorderConfig tunes drag-to-reorder in the TUI. Zero values use the engine defaults.
type ReorderConfig struct {
	HoldMs        int    `json:"holdMs,omitempty"`
	MoveThreshold int    `json:"moveThreshold,omitempty"`
	Strategy      string `json:"strategy,omitempty"`
	DeadZone      int    `json:"deadZone,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.taskdeck).
	if v := strings.TrimSpace(os.Getenv("TASKDECK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskdeck"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// ConfigKeys lists the keys accepted by Config.Set, sorted.
func ConfigKeys() []string {
	keys := make([]string, 0, len(configSetters))
	for k := range configSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var configSetters = map[string]func(c *Config, v string) error{
	"backend": func(c *Config, v string) error {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != BackendSQLite && v != BackendJSON && v != "" {
			return fmt.Errorf("backend must be sqlite|json, got %q", v)
		}
		c.Backend = v
		return nil
	},
	"defaultTab": func(c *Config, v string) error {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "deadlines" && v != "routines" && v != "" {
			return fmt.Errorf("defaultTab must be deadlines|routines, got %q", v)
		}
		c.DefaultTab = v
		return nil
	},
	"theme": func(c *Config, v string) error {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "light" && v != "dark" && v != "auto" && v != "" {
			return fmt.Errorf("theme must be light|dark|auto, got %q", v)
		}
		c.Theme = v
		return nil
	},
	"reorder.holdMs":        intSetter(func(c *Config) *int { return &c.Reorder.HoldMs }),
	"reorder.moveThreshold": intSetter(func(c *Config) *int { return &c.Reorder.MoveThreshold }),
	"reorder.deadZone":      intSetter(func(c *Config) *int { return &c.Reorder.DeadZone }),
	"reorder.strategy": func(c *Config, v string) error {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "indicator" && v != "displace" && v != "" {
			return fmt.Errorf("reorder.strategy must be indicator|displace, got %q", v)
		}
		c.Reorder.Strategy = v
		return nil
	},
}

func intSetter(field func(c *Config) *int) func(c *Config, v string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("expected an integer, got %q", v)
		}
		if n < 0 {
			return fmt.Errorf("expected a non-negative integer, got %d", n)
		}
		*field(c) = n
		return nil
	}
}

// Set assigns one config key from its string form.
func (c *Config) Set(key, value string) error {
	set, ok := configSetters[strings.TrimSpace(key)]
	if !ok {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	return set(c, value)
}
