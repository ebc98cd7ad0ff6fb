package main_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary once for all tests
	tmpDir, err := os.MkdirTemp("", "servicegen-vet-e2e-*")
	if err != nil {
		panic(err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	binaryPath = filepath.Join(tmpDir, "servicegen-vet")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = filepath.Join(getModuleRoot(), "cmd", "servicegen-vet")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic(string(out) + ": " + err.Error())
	}

	os.Exit(m.Run())
}

func getModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			// Make sure it's the main module, not a testdata module
			if _, err := os.Stat(filepath.Join(dir, "analyzer.go")); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("module root not found")
		}
		dir = parent
	}
}

func getE2ETestdata() string {
	return filepath.Join(getModuleRoot(), "cmd", "servicegen-vet", "testdata")
}

func TestE2E_Basic(t *testing.T) {
	testdata := filepath.Join(getE2ETestdata(), "basic")

	cmd := exec.Command(binaryPath, "./...")
	cmd.Dir = testdata
	out, err := cmd.CombinedOutput()

	// Should exit with non-zero (has diagnostics)
	if err == nil {
		t.Fatal("expected non-zero exit code for code with issues")
	}

	output := string(out)

	if !strings.Contains(output, "example.com/basic.Bad does not implement example.com/basic/api.Plugin") {
		t.Errorf("expected validation error, got:\n%s", output)
	}

	// Bare names refer to the declaring package
	if !strings.Contains(output, "Unqualified: cannot locate the type declaration for service contract Plugin") {
		t.Errorf("expected unresolvable contract error, got:\n%s", output)
	}

	if strings.Contains(output, "Good") {
		t.Errorf("unexpected diagnostic for a valid service, got:\n%s", output)
	}

	if !strings.Contains(output, "main.go:") {
		t.Errorf("expected file location in output, got:\n%s", output)
	}
}

func TestE2E_ImportedContract(t *testing.T) {
	testdata := filepath.Join(getE2ETestdata(), "multi")

	cmd := exec.Command(binaryPath, "./...")
	cmd.Dir = testdata
	out, err := cmd.CombinedOutput()

	if err == nil {
		t.Fatal("expected non-zero exit code for code with issues")
	}

	output := string(out)

	if !strings.Contains(output, "example.com/multi/impl.Raw does not implement example.com/multi/contract.Codec") {
		t.Errorf("expected validation error, got:\n%s", output)
	}

	if strings.Contains(output, "impl.JSON") {
		t.Errorf("unexpected diagnostic for a valid service, got:\n%s", output)
	}
}

func TestE2E_TrustMode(t *testing.T) {
	testdata := filepath.Join(getE2ETestdata(), "multi")

	cmd := exec.Command(binaryPath, "-verify=false", "./...")
	cmd.Dir = testdata
	out, err := cmd.CombinedOutput()

	// Should exit with zero (nothing is verified)
	if err != nil {
		t.Errorf("expected zero exit code without verification, got error: %v\noutput:\n%s", err, out)
	}
}

func TestE2E_HelpFlag(t *testing.T) {
	cmd := exec.Command(binaryPath, "-help")
	out, _ := cmd.CombinedOutput()

	output := string(out)

	for _, flag := range []string{"-verify", "-marker"} {
		if !strings.Contains(output, flag) {
			t.Errorf("expected flag %q in help output, got:\n%s", flag, output)
		}
	}
}

func TestE2E_NoIssuesExitZero(t *testing.T) {
	// Create a temp directory with clean code
	tmpDir, err := os.MkdirTemp("", "servicegen-vet-clean-*")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	if err := os.WriteFile(filepath.Join(tmpDir, "go.mod"), []byte("module example.com/clean\n\ngo 1.24\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cleanCode := `package main

import (
	"fmt"
	"io"
)

//servicegen:service io.Reader, fmt.Stringer
type Source struct{}

func (Source) Read(p []byte) (int, error) { return 0, io.EOF }
func (Source) String() string { return "source" }

func main() {
	fmt.Println(Source{})
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, "main.go"), []byte(cleanCode), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.Command(binaryPath, "./...")
	cmd.Dir = tmpDir
	out, err := cmd.CombinedOutput()

	if err != nil {
		t.Errorf("expected zero exit code for clean code, got error: %v\noutput:\n%s", err, out)
	}
}

func TestE2E_InvalidFlag(t *testing.T) {
	cmd := exec.Command(binaryPath, "-invalid-flag-xyz", "./...")
	_, err := cmd.CombinedOutput()

	if err == nil {
		t.Error("expected non-zero exit code for invalid flag")
	}
}

func TestE2E_Version(t *testing.T) {
	// singlechecker doesn't have a version flag, but -V=full shows analyzer info
	cmd := exec.Command(binaryPath, "-V=full")
	out, err := cmd.CombinedOutput()

	if err != nil {
		t.Errorf("unexpected error: %v\noutput:\n%s", err, out)
	}

	if !strings.Contains(string(out), "servicegen-vet") {
		t.Errorf("expected binary name in version output, got:\n%s", out)
	}
}
