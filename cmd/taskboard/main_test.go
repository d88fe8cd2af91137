package main

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/amonks/taskboard/internal/config"
	"github.com/amonks/taskboard/server"
)

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "taskboard" {
		t.Fatalf("expected root command name taskboard, got %q", rootCmd.Use)
	}
}

func TestResolveAddr(t *testing.T) {
	prevAddr := rootAddr
	t.Cleanup(func() { rootAddr = prevAddr })

	cfg := &config.Config{Server: config.Server{Host: "0.0.0.0", Port: 7000}}

	cases := []struct {
		name string
		env  string
		flag string
		want string
	}{
		{name: "config", want: "0.0.0.0:7000"},
		{name: "env", env: "8123", want: "127.0.0.1:8123"},
		{name: "flag beats env", env: "8123", flag: "http://example.test:1", want: "http://example.test:1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(server.AddrEnv, tc.env)
			cmd := &cobra.Command{Use: "example"}
			cmd.Flags().StringVar(&rootAddr, "addr", "", "")
			if tc.flag != "" {
				if err := cmd.Flags().Set("addr", tc.flag); err != nil {
					t.Fatalf("set addr: %v", err)
				}
			}

			got, err := resolveAddr(cmd, cfg)
			if err != nil {
				t.Fatalf("resolve addr: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestResolveAddrRejectsBadPort(t *testing.T) {
	t.Setenv(server.AddrEnv, "nope")
	cmd := &cobra.Command{Use: "example"}
	if _, err := resolveAddr(cmd, &config.Config{}); err == nil {
		t.Fatal("expected error for invalid address")
	}
}
