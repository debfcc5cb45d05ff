package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// baselineRelPath is the fixed sub-path of the baseline JSON checked by
// the cross-project version guard.
const baselineRelPath = "test/baseline.json"

// VersionWarning is the structured outcome of a version mismatch: the
// text to emit and the stream to emit it on.
type VersionWarning struct {
	Output string
	Stream string // "stdout" or "stderr"
}

// CheckBaselineVersion compares the version field of the project's
// package.json against the version recorded in the baseline JSON. On
// mismatch it returns a warning — a multi-line human message for
// terminals (stderr) or a single-line ::warning:: annotation for CI
// (stdout). Any missing file, malformed JSON, or absent version field is
// a silent no-op returning nil.
func CheckBaselineVersion(projectRoot string, ciAnnotations bool) *VersionWarning {
	packageVersion, ok := readVersionField(filepath.Join(projectRoot, "package.json"))
	if !ok {
		return nil
	}
	baselineVersion, ok := readVersionField(filepath.Join(projectRoot, baselineRelPath))
	if !ok {
		return nil
	}
	if packageVersion == baselineVersion {
		return nil
	}

	if ciAnnotations {
		return &VersionWarning{
			Output: fmt.Sprintf("::warning::baseline version %s does not match package version %s; re-record the baseline",
				baselineVersion, packageVersion),
			Stream: "stdout",
		}
	}
	return &VersionWarning{
		Output: fmt.Sprintf("WARNING: baseline version mismatch\n  package.json: %s\n  %s: %s\n  re-record the baseline after releasing",
			packageVersion, baselineRelPath, baselineVersion),
		Stream: "stderr",
	}
}

// readVersionField extracts a string "version" field from a JSON file.
func readVersionField(path string) (string, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	var doc struct {
		Version *string `json:"version"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil || doc.Version == nil {
		return "", false
	}
	return *doc.Version, true
}
