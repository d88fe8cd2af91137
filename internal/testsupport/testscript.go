package testsupport

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/amonks/taskboard/server"
	"github.com/amonks/taskboard/task"
)

var (
	buildOnce     sync.Once
	taskboardPath string
	buildErr      error
)

// BuildTaskboard builds the taskboard binary once and returns its path.
func BuildTaskboard(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "taskboard-bin-")
		if err != nil {
			buildErr = err
			return
		}

		taskboardPath = filepath.Join(binDir, "taskboard")
		cmd := exec.Command("go", "build", "-o", taskboardPath, "./cmd/taskboard")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build taskboard: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return taskboardPath
}

// SetupScriptEnv configures common environment variables for testscript and
// starts a task server with an empty store for the script to talk to.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TASKBOARD", BuildTaskboard(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("NO_COLOR", "1")

	srv, err := server.New(task.NewService(task.NewMemStore(), task.ServiceOptions{}), server.Options{
		Logger: log.New(io.Discard, "", 0),
	})
	if err != nil {
		return err
	}
	httpServer := httptest.NewServer(srv.Handler())
	env.Defer(httpServer.Close)
	env.Setenv(server.AddrEnv, httpServer.URL)
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdTaskID finds a task by name in a JSON task list and stores its ID in an
// env var.
func CmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: taskid FILE NAME VAR")
	}

	var items []task.Task
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}

	name := args[1]
	for _, item := range items {
		if item.Name == name {
			ts.Setenv(args[2], fmt.Sprint(item.ID))
			return
		}
	}

	ts.Fatalf("task named %q not found", name)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
