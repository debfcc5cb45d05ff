package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareToBaselineMatch(t *testing.T) {
	got := CompareToBaseline(1, 1)
	assert.True(t, got.Passed)
	assert.Equal(t, 0, got.Improvement)
	assert.False(t, got.RequiresBaselineUpdate)
	assert.Contains(t, got.Message, "1 failure")
	assert.NotContains(t, got.Message, "1 failures")
	assert.Contains(t, got.Message, "matches baseline")
}

func TestCompareToBaselineImprovement(t *testing.T) {
	got := CompareToBaseline(5, 10)
	assert.True(t, got.Passed)
	assert.Equal(t, 5, got.Improvement)
	assert.True(t, got.RequiresBaselineUpdate)
	assert.Contains(t, got.Message, "improvement detected")
	assert.Contains(t, got.Message, "5 failures")
}

func TestCompareToBaselineRegression(t *testing.T) {
	got := CompareToBaseline(11, 10)
	assert.False(t, got.Passed)
	assert.Equal(t, -1, got.Improvement)
	assert.Contains(t, got.Message, "regression")
	assert.Contains(t, got.Message, "1")
}

func TestCompareToBaselineZero(t *testing.T) {
	got := CompareToBaseline(0, 0)
	assert.True(t, got.Passed)
	assert.Contains(t, got.Message, "0 failures")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadBaseline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "baseline.json")

	writeFile(t, path, `{"maxFailures": 7}`)
	baseline, err := LoadBaseline(path)
	require.NoError(t, err)
	assert.Equal(t, 7, baseline.MaxFailures)
}

func TestLoadBaselineErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		content string
		write   bool
	}{
		{"missing file", filepath.Join(dir, "absent.json"), "", false},
		{"invalid json", filepath.Join(dir, "bad.json"), "{not json", true},
		{"missing field", filepath.Join(dir, "nofield.json"), `{"other": 1}`, true},
		{"non-numeric field", filepath.Join(dir, "nonnum.json"), `{"maxFailures": "many"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.write {
				writeFile(t, tt.path, tt.content)
			}
			_, err := LoadBaseline(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestRunRatchetMissingCorpusSkips(t *testing.T) {
	dir := t.TempDir()
	outcome := RunRatchet(filepath.Join(dir, "baseline.json"), filepath.Join(dir, "no-such-dir"),
		func(string) (int, error) { t.Fatal("must not count"); return 0, nil })

	assert.Equal(t, ExitPass, outcome.ExitCode)
	assert.True(t, outcome.Skipped)
}

func TestRunRatchetEmptyCorpusIsConfigError(t *testing.T) {
	dir := t.TempDir()
	corpusDir := filepath.Join(dir, "corpus")
	require.NoError(t, os.MkdirAll(corpusDir, 0o755))

	outcome := RunRatchet(filepath.Join(dir, "baseline.json"), corpusDir,
		func(string) (int, error) { return 0, nil })
	assert.Equal(t, ExitConfigError, outcome.ExitCode)
}

func TestRunRatchetPassAndRegression(t *testing.T) {
	dir := t.TempDir()
	corpusDir := filepath.Join(dir, "corpus")
	writeFile(t, filepath.Join(corpusDir, "COD1.TXT"), "OBJECT Codeunit 1 T{}")
	baselinePath := filepath.Join(dir, "baseline.json")
	writeFile(t, baselinePath, `{"maxFailures": 2}`)

	pass := RunRatchet(baselinePath, corpusDir, func(string) (int, error) { return 2, nil })
	assert.Equal(t, ExitPass, pass.ExitCode)
	require.NotNil(t, pass.Comparison)
	assert.False(t, pass.Comparison.RequiresBaselineUpdate)

	improved := RunRatchet(baselinePath, corpusDir, func(string) (int, error) { return 0, nil })
	assert.Equal(t, ExitPass, improved.ExitCode)
	require.NotNil(t, improved.Comparison)
	assert.True(t, improved.Comparison.RequiresBaselineUpdate)

	regressed := RunRatchet(baselinePath, corpusDir, func(string) (int, error) { return 3, nil })
	assert.Equal(t, ExitRegression, regressed.ExitCode)
}

func TestRunRatchetMissingBaselineIsConfigError(t *testing.T) {
	dir := t.TempDir()
	corpusDir := filepath.Join(dir, "corpus")
	writeFile(t, filepath.Join(corpusDir, "COD1.TXT"), "OBJECT Codeunit 1 T{}")

	outcome := RunRatchet(filepath.Join(dir, "absent.json"), corpusDir,
		func(string) (int, error) { return 0, nil })
	assert.Equal(t, ExitConfigError, outcome.ExitCode)
}
