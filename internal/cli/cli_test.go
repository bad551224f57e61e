package cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildBinary compiles the adhan-clock binary to a temp directory for testing.
func buildBinary(t *testing.T, ldflags string) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "adhan-clock")

	args := []string{"build"}
	if ldflags != "" {
		args = append(args, "-ldflags", ldflags)
	}
	args = append(args, "-o", binPath, "../../cmd/adhan-clock")

	cmd := exec.Command("go", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return binPath
}

// isolatedEnv points config lookups at an empty temp directory.
func isolatedEnv(t *testing.T) []string {
	t.Helper()
	env := []string{"XDG_CONFIG_HOME=" + t.TempDir(), "HOME=" + t.TempDir()}
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "ADHAN_CLOCK_") || strings.HasPrefix(kv, "XDG_CONFIG_HOME=") || strings.HasPrefix(kv, "HOME=") {
			continue
		}
		env = append(env, kv)
	}
	return env
}

func TestVersionFlag(t *testing.T) {
	binPath := buildBinary(t, "-X main.version=v1.2.3-test")

	out, err := exec.Command(binPath, "--version").Output()
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}

	got := strings.TrimSpace(string(out))
	want := "adhan-clock version v1.2.3-test"
	if got != want {
		t.Errorf("--version = %q, want %q", got, want)
	}
}

func TestVersionFlag_Dev(t *testing.T) {
	binPath := buildBinary(t, "")

	out, err := exec.Command(binPath, "--version").Output()
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}

	got := strings.TrimSpace(string(out))
	if got != "adhan-clock version dev" {
		t.Errorf("--version output unexpected: %q", got)
	}
}

func TestMethodsSubcommand(t *testing.T) {
	binPath := buildBinary(t, "")

	cmd := exec.Command(binPath, "methods")
	cmd.Env = isolatedEnv(t)
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("methods failed: %v", err)
	}

	output := string(out)
	for _, m := range []string{"ISNA", "Muslim World League", "Umm Al-Qura", "Jafari", "Ministry of Awqaf, Jordan"} {
		if !strings.Contains(output, m) {
			t.Errorf("methods output missing %q", m)
		}
	}
}

func TestHelpFlag(t *testing.T) {
	binPath := buildBinary(t, "")

	out, err := exec.Command(binPath, "--help").Output()
	if err != nil {
		t.Fatalf("--help failed: %v", err)
	}

	output := string(out)
	for _, sub := range []string{"watch", "today", "next", "config", "methods", "--adhan", "--locale"} {
		if !strings.Contains(output, sub) {
			t.Errorf("--help output missing %q", sub)
		}
	}
	for _, gone := range []string{"week", "month", "query"} {
		if strings.Contains(output, "  "+gone+" ") {
			t.Errorf("--help still lists %q", gone)
		}
	}
}

func TestConfigPath_RespectsXDG(t *testing.T) {
	binPath := buildBinary(t, "")

	env := isolatedEnv(t)
	cmd := exec.Command(binPath, "config", "path")
	cmd.Env = env
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}

	var xdg string
	for _, kv := range env {
		if v, ok := strings.CutPrefix(kv, "XDG_CONFIG_HOME="); ok {
			xdg = v
		}
	}
	got := strings.TrimSpace(string(out))
	if !strings.HasPrefix(got, xdg) {
		t.Errorf("config path = %q, want it under %q", got, xdg)
	}
}

func TestConfigSetThenShow(t *testing.T) {
	binPath := buildBinary(t, "")
	env := isolatedEnv(t)

	set := exec.Command(binPath, "config", "set", "method", "4")
	set.Env = env
	if out, err := set.CombinedOutput(); err != nil {
		t.Fatalf("config set failed: %v\n%s", err, out)
	}

	show := exec.Command(binPath, "config")
	show.Env = append(env, "ADHAN_CLOCK_CITY=Riyadh")
	out, err := show.Output()
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	output := string(out)
	if !strings.Contains(output, "4 (Umm Al-Qura University, Makkah)") {
		t.Errorf("config show missing method name:\n%s", output)
	}
	if !strings.Contains(output, "[ADHAN_CLOCK_CITY=Riyadh]") {
		t.Errorf("config show missing env override:\n%s", output)
	}
}

func TestConfigSet_RejectsUnknownMethod(t *testing.T) {
	binPath := buildBinary(t, "")

	cmd := exec.Command(binPath, "config", "set", "method", "6")
	cmd.Env = isolatedEnv(t)
	err := cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() == 0 {
		t.Error("expected non-zero exit code")
	}
}

func TestCityWithoutCountry_ExitCode(t *testing.T) {
	binPath := buildBinary(t, "")

	cmd := exec.Command(binPath, "next", "--city", "Riyadh")
	cmd.Env = isolatedEnv(t)
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected failure, got output %q", out)
	}
	if !strings.Contains(string(out), "--country is required") {
		t.Errorf("unexpected error output: %q", out)
	}
}

func TestCalculationMethods_NoDuplicateIDs(t *testing.T) {
	seen := make(map[int]bool)
	for _, m := range CalculationMethods {
		if seen[m.ID] {
			t.Errorf("duplicate calculation method ID: %d", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestCalculationMethods_IDsAreValid(t *testing.T) {
	for _, m := range CalculationMethods {
		if m.ID < 0 || m.ID > 23 || m.ID == 6 {
			t.Errorf("method ID %d is not an Al Adhan method", m.ID)
		}
		if m.Name == "" {
			t.Errorf("method ID %d has empty name", m.ID)
		}
	}
}
