// Package main implements the taskboard CLI: the API server and a client for
// managing tasks from the terminal.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/amonks/taskboard/internal/config"
	"github.com/amonks/taskboard/internal/paths"
	"github.com/amonks/taskboard/server"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Taskboard - a small task tracker with completion statistics",
}

var rootAddr string

func init() {
	rootCmd.PersistentFlags().StringVar(&rootAddr, "addr", "", "Server address (host:port, port, or URL); defaults to $"+server.AddrEnv+" or the configured address")
}

// loadConfig reads taskboard.toml for the current directory.
func loadConfig() (*config.Config, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	return config.Load(cwd)
}

// resolveAddr picks the server address: --addr, then $TASKBOARD_ADDR, then
// the configured host and port.
func resolveAddr(cmd *cobra.Command, cfg *config.Config) (string, error) {
	addr := os.Getenv(server.AddrEnv)
	if cmd.Flags().Changed("addr") {
		addr = rootAddr
	}
	return server.ResolveAddr(addr, cfg.Server)
}

// newClient returns an API client for the resolved server address.
func newClient(cmd *cobra.Command) (*server.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	addr, err := resolveAddr(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return server.NewClient(addr), nil
}
