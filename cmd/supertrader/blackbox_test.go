//go:build blackbox

package main_test

import (
	"database/sql"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

var binPath string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "supertrader-blackbox-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmp)

	binPath = filepath.Join(tmp, "supertrader")

	// Build the binary once for all tests.
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func run(t *testing.T, env []string, args ...string) string {
	t.Helper()

	cmd := exec.Command(binPath, args...)
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("command failed: %v\nargs: %v\noutput:\n%s", err, args, string(out))
	}
	return string(out)
}

func TestRunEndlessEMACross(t *testing.T) {
	db := filepath.Join(t.TempDir(), "supertrader.sqlite")
	env := []string{
		"SUPERTRADER_JOURNAL_TYPE=sqlite",
		"SUPERTRADER_DB_PATH=" + db,
		"SUPERTRADER_SEED=7",
		"SUPERTRADER_LOG_LEVEL=error",
	}

	out := run(t, env, "run", "--preset", "endless", "--ticks", "400", "--strategy", "ema-cross", "--fast", "5", "--slow", "20")
	if !strings.Contains(out, "Ticks:          400") {
		t.Fatalf("expected 400 ticks, got:\n%s", out)
	}
	if !strings.Contains(out, "still trading") {
		t.Fatalf("endless session should never end, got:\n%s", out)
	}

	conn, err := sql.Open("sqlite3", db)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	var sessions, ticks int
	if err := conn.QueryRow(`SELECT COUNT(*), MAX(ticks) FROM sessions`).Scan(&sessions, &ticks); err != nil {
		t.Fatal(err)
	}
	if sessions != 1 || ticks != 400 {
		t.Fatalf("expected one session of 400 ticks, got %d sessions, %d ticks", sessions, ticks)
	}

	var equity int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM equity`).Scan(&equity); err != nil {
		t.Fatal(err)
	}
	if equity < 16 {
		t.Fatalf("expected an equity snapshot every 25 ticks, got %d", equity)
	}
}

func TestRunClassicCollapse(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "crash.yaml")
	yaml := `game:
  preset: classic
  initial_cash: 1000
  seed_price: 3
  stddev: 1
  history_capacity: 100
  tick_interval: 200ms
  enforce_insolvency: true
  spread: 0.01
  price_steps: [2, 1, 0, 5]
`
	if err := os.WriteFile(cfg, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	out := run(t, []string{"SUPERTRADER_LOG_LEVEL=error"}, "run", "-c", cfg, "--strategy", "buy-hold", "--ticks", "10")
	for _, want := range []string{"Ticks:          4", "Shares:         0", "stock collapsed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestConfigInitValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supertrader.yaml")

	out := run(t, nil, "config", "init", "-o", path)
	if !strings.Contains(out, "Created default configuration") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	out = run(t, nil, "config", "validate", "-f", path)
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
