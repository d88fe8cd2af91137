package main

import (
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/amonks/taskboard/internal/config"
	"github.com/amonks/taskboard/server"
	"github.com/amonks/taskboard/task"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the task API server",
	Long: `Run the task API server.

Tasks live in memory and are lost when the server stops. The listen address
comes from --addr, then $TASKBOARD_ADDR, then the [server] section of
taskboard.toml, then 127.0.0.1:9090. An http:// URL, as used by the todo
commands, listens on its host and port.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAllowedOrigins []string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringSliceVar(&serveAllowedOrigins, "allow-origin", nil, "Browser origin allowed to call the API (repeatable; * allows any)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr, err := resolveAddr(cmd, cfg)
	if err != nil {
		return err
	}
	addr, err = server.ListenAddr(addr)
	if err != nil {
		return err
	}
	srv, err := newServer(cfg, serveAllowedOrigins, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return srv.Serve(cmd.Context(), addr)
}

// newServer builds a server over a fresh in-memory store. Origins given on
// the command line replace the configured ones.
func newServer(cfg *config.Config, origins []string, logOutput io.Writer) (*server.Server, error) {
	if len(origins) == 0 {
		origins = cfg.Server.AllowedOrigins
	}
	service := task.NewService(task.NewMemStore(), task.ServiceOptions{})
	return server.New(service, server.Options{
		Logger:         log.New(logOutput, "taskboard: ", log.LstdFlags),
		AllowedOrigins: origins,
	})
}
