package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// CurrentVersion is the current config schema version
const CurrentVersion = 1

// Migration represents a config migration function
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(data map[string]any) (map[string]any, error)
}

// migrations is the list of migrations in order
var migrations = []Migration{
	// Migration 0 -> 1: flat keys move into tables
	{
		FromVersion: 0,
		ToVersion:   1,
		Migrate: func(data map[string]any) (map[string]any, error) {
			if old, ok := data["toast_timeout_ms"]; ok {
				notifications, err := table(data, "notifications")
				if err != nil {
					return nil, err
				}
				if _, set := notifications["default_duration_ms"]; !set {
					notifications["default_duration_ms"] = old
				}
				delete(data, "toast_timeout_ms")
			}
			if old, ok := data["lang"]; ok {
				if _, set := data["language"]; !set {
					data["language"] = old
				}
				delete(data, "lang")
			}
			if old, ok := data["log_file"]; ok {
				logTable, err := table(data, "log")
				if err != nil {
					return nil, err
				}
				if _, set := logTable["file"]; !set {
					logTable["file"] = old
				}
				delete(data, "log_file")
			}
			data["version"] = 1
			return data, nil
		},
	},
}

// table returns data[name] as a table, creating it if absent.
func table(data map[string]any, name string) (map[string]any, error) {
	raw, ok := data[name]
	if !ok {
		t := map[string]any{}
		data[name] = t
		return t, nil
	}
	t, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected table, got %T", name, raw)
	}
	return t, nil
}

// ParseVersionedConfig parses TOML config data with version migration
// support. Keys absent from data keep their default values.
func ParseVersionedConfig(data []byte) (*Config, error) {
	// First, parse as a raw document to get version
	var rawConfig map[string]any
	if err := toml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config TOML: %w", err)
	}
	if rawConfig == nil {
		rawConfig = map[string]any{}
	}

	// Detect version (0 if not present = legacy config)
	version := 0
	switch v := rawConfig["version"].(type) {
	case int64:
		version = int(v)
	case float64:
		version = int(v)
	}

	if version > CurrentVersion {
		return nil, fmt.Errorf("config version %d is newer than supported version %d", version, CurrentVersion)
	}

	if version < CurrentVersion {
		var err error
		rawConfig, err = ApplyMigrations(rawConfig, version)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate config: %w", err)
		}
	}

	// Re-marshal and unmarshal to get proper types
	migratedData, err := toml.Marshal(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal migrated config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(migratedData, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// ApplyMigrations applies all migrations from the given version to CurrentVersion
func ApplyMigrations(data map[string]any, fromVersion int) (map[string]any, error) {
	for _, migration := range migrations {
		if migration.FromVersion == fromVersion {
			var err error
			data, err = migration.Migrate(data)
			if err != nil {
				return nil, fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			fromVersion = migration.ToVersion
		}
	}

	if fromVersion < CurrentVersion {
		return nil, fmt.Errorf("no migration path from version %d to %d", fromVersion, CurrentVersion)
	}

	return data, nil
}

// MarshalVersionedConfig serializes a config with version information
func MarshalVersionedConfig(cfg *Config) ([]byte, error) {
	out := *cfg
	out.Version = CurrentVersion
	return toml.Marshal(&out)
}
