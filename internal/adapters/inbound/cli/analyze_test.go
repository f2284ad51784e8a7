package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodic-software/medley/internal/adapters/inbound/cli"
)

const fixtureDir = "../../../../testdata/modularshop"

// copyFixture clones the fixture into a temp dir so commands can write
// .medley state and apply renames without touching the checked-in files.
func copyFixture(t *testing.T) string {
	t.Helper()
	dst := t.TempDir()
	err := filepath.WalkDir(fixtureDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(fixtureDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
	require.NoError(t, err)
	return dst
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestAnalyzeCommand_DefaultTUI(t *testing.T) {
	dir := copyFixture(t)
	out, err := runCommand(t, "analyze", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Convention Report")
	assert.Contains(t, out, "OrderStore")
	assert.Contains(t, out, "MDY001")
	assert.Contains(t, out, "MDY010")
	assert.Contains(t, out, "[fixable]")
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	dir := copyFixture(t)
	out, err := runCommand(t, "analyze", dir, "--json")
	require.NoError(t, err)

	var report struct {
		Diagnostics []struct {
			ID       string `json:"id"`
			TypeName string `json:"type_name"`
		} `json:"diagnostics"`
		Summary struct {
			Errors   int `json:"errors"`
			Warnings int `json:"warnings"`
			Infos    int `json:"infos"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report), "output should be valid JSON")

	byID := map[string]int{}
	for _, d := range report.Diagnostics {
		byID[d.ID]++
	}
	for _, id := range []string{"MDY001", "MDY002", "MDY003", "MDY004", "MDY005", "MDY006", "MDY007", "MDY010"} {
		assert.Equal(t, 1, byID[id], "expected exactly one %s finding", id)
	}
	assert.Equal(t, 0, report.Summary.Errors)
	assert.Equal(t, 6, report.Summary.Warnings)
	assert.Equal(t, 2, report.Summary.Infos)
}

func TestAnalyzeCommand_CIPassesOnDefaultThreshold(t *testing.T) {
	dir := copyFixture(t)
	_, err := runCommand(t, "analyze", dir, "--ci")
	assert.NoError(t, err, "fixture has no error-severity findings")
}

func TestAnalyzeCommand_CIFailsOnWarnings(t *testing.T) {
	dir := copyFixture(t)
	_, err := runCommand(t, "analyze", dir, "--ci", "--fail-on", "warning")
	assert.Error(t, err)
}

func TestAnalyzeCommand_CIUnknownSeverity(t *testing.T) {
	dir := copyFixture(t)
	_, err := runCommand(t, "analyze", dir, "--ci", "--fail-on", "fatal")
	assert.Error(t, err)
}

func TestAnalyzeCommand_BaselineSuppressesKnownFindings(t *testing.T) {
	dir := copyFixture(t)

	_, err := runCommand(t, "analyze", dir, "--update-baseline")
	require.NoError(t, err)

	out, err := runCommand(t, "analyze", dir, "--baseline")
	require.NoError(t, err)
	assert.Contains(t, out, "No violations found.")
}

func TestAnalyzeCommand_History(t *testing.T) {
	dir := copyFixture(t)

	_, err := runCommand(t, "analyze", dir)
	require.NoError(t, err)

	out, err := runCommand(t, "analyze", dir, "--history")
	require.NoError(t, err)
	assert.Contains(t, out, "Run History")
}
