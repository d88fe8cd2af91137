// Package config handles loading taskboard.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/amonks/taskboard/internal/paths"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "taskboard.toml"

// Config represents the taskboard.toml configuration file.
type Config struct {
	Server Server `toml:"server"`
}

// Server contains settings for the HTTP server and the clients that talk to it.
type Server struct {
	// Host is the interface the server binds to and clients dial.
	Host string `toml:"host"`

	// Port is the TCP port. Zero means the default port.
	Port int `toml:"port"`

	// AllowedOrigins lists browser origins that may call the API.
	AllowedOrigins []string `toml:"allowed-origins"`
}

// Load loads configuration from dir and the global config file.
// Returns an empty config if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := GlobalPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	return mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta), nil
}

// GlobalPath returns the location of the per-user config file.
func GlobalPath() (string, error) {
	dir, err := paths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return nil, toml.MetaData{}, fmt.Errorf("config file %s: port out of range: %d", path, cfg.Server.Port)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	merged := Config{}
	merged.Server.Host = mergeString(projectMeta.IsDefined("server", "host"), projectCfg.Server.Host, globalCfg.Server.Host)
	merged.Server.Port = globalCfg.Server.Port
	if projectMeta.IsDefined("server", "port") {
		merged.Server.Port = projectCfg.Server.Port
	}
	if projectMeta.IsDefined("server", "allowed-origins") {
		merged.Server.AllowedOrigins = append([]string(nil), projectCfg.Server.AllowedOrigins...)
	} else if globalMeta.IsDefined("server", "allowed-origins") {
		merged.Server.AllowedOrigins = append([]string(nil), globalCfg.Server.AllowedOrigins...)
	}
	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}
