package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runDumdum(t, binaryPath, home, "wallet", "import", "--mnemonic", testMnemonic, "--label", "smoke")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "imported ")

	_, stderr, err = runDumdum(t, binaryPath, home, "wallet", "connect", "--yes")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runDumdum(t, binaryPath, home, "wallet", "status", "-o", "yaml")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "connected: true")

	_, stderr, err = runDumdum(t, binaryPath, home, "wallet", "disconnect")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runDumdum(t, binaryPath, home, "wallet", "status")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Equal(t, "not connected\n", stdout)
}

func TestSmokeWriteRequiresConnection(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runDumdum(t, binaryPath, home, "process", "write", "--yes", "--process", "bot", "--tag", "Action=Start")
	require.Error(t, err)
	assert.Contains(t, stderr, "wallet not connected")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "dumdum-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/dumdum")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build dumdum binary: %s", string(output))
	return binaryPath
}

func runDumdum(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"DUMDUM_PATHS_PASS_BINARY="+filepath.Join(home, "no-pass"),
		"DUMDUM_AO_MU_URL=http://127.0.0.1:1",
		"DUMDUM_AO_CU_URL=http://127.0.0.1:1",
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
