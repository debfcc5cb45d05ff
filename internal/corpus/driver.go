// Package corpus implements the validation harness that runs the lexer
// across a directory of real-world C/AL exports and aggregates per-file
// results into a health report and a regression baseline.
package corpus

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/klauskaan/go-cal/internal/lexer"
	"github.com/klauskaan/go-cal/internal/stats"
)

// DefaultRoot is the default corpus directory.
const DefaultRoot = "test/REAL"

// FileResult holds the outcome of one corpus file run.
type FileResult struct {
	File               string
	Lines              int
	TokenCount         int
	TokenizeTime       time.Duration
	PositionValidation lexer.PositionValidation
	CleanExit          lexer.CleanExitResult
	Errors             []string
}

// Failed reports whether any validation on the file failed.
func (r FileResult) Failed() bool {
	return !r.PositionValidation.IsValid || !r.CleanExit.Passed || len(r.Errors) > 0
}

// Driver walks a corpus root and validates every C/AL export in it.
type Driver struct {
	Root string
	Log  *logrus.Logger
}

// NewDriver creates a Driver for the given root; an empty root selects
// the default corpus directory.
func NewDriver(root string, log *logrus.Logger) *Driver {
	if root == "" {
		root = DefaultRoot
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
	}
	return &Driver{Root: root, Log: log}
}

// Run discovers the corpus files, validates each, and returns the results
// in walk order. The error is non-nil only when the root itself cannot be
// walked.
func (d *Driver) Run() ([]FileResult, error) {
	files, err := d.discover()
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, 0, len(files))
	start := time.Now()
	for i, file := range files {
		results = append(results, d.runFile(file))

		if eta := stats.CalculateETA(i+1, len(files), time.Since(start)); eta != nil {
			d.Log.WithFields(logrus.Fields{
				"processed": i + 1,
				"total":     len(files),
				"eta_s":     *eta,
			}).Debug("corpus progress")
		}
	}
	return results, nil
}

// discover walks the root collecting files with a case-insensitive .txt
// extension, sorted for stable reports.
func (d *Driver) discover() ([]string, error) {
	var files []string
	err := filepath.WalkDir(d.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".txt") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking corpus root %s: %w", d.Root, err)
	}
	sort.Strings(files)
	return files, nil
}

// runFile validates a single corpus file. Read failures become synthetic
// failing results rather than aborting the run.
func (d *Driver) runFile(path string) FileResult {
	result := FileResult{File: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		result.PositionValidation = lexer.PositionValidation{IsValid: false}
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	source := DecodeSource(raw)
	result.Lines = strings.Count(source, "\n") + 1

	l := lexer.New(source)
	tokStart := time.Now()
	tokens := l.Tokenize()
	result.TokenizeTime = time.Since(tokStart)
	result.TokenCount = len(tokens)

	result.PositionValidation = lexer.ValidateTokenPositions(source, tokens)
	result.CleanExit = l.IsCleanExit(lexer.CleanExitOptions{
		AllowRdldataUnderflow: AllowRdldataUnderflow(path),
	})

	if result.Failed() {
		d.Log.WithField("file", path).Warn("corpus file failed validation")
	}
	return result
}

// AllowRdldataUnderflow reports whether the file is a Report export, whose
// RDLDATA sections carry asymmetric close markers in the corpus: the
// uppercased base name starts with "REP" but not with "REPORT".
func AllowRdldataUnderflow(path string) bool {
	name := strings.ToUpper(filepath.Base(path))
	return strings.HasPrefix(name, "REP") && !strings.HasPrefix(name, "REPORT")
}

// DecodeSource converts raw file bytes to UTF-8 text. C/AL exports come as
// UTF-8 (with or without BOM), UTF-16 with BOM, or single-byte OEM text;
// the fallback order is CP850 for bytes invalid in UTF-8, matching the
// classic export format.
func DecodeSource(raw []byte) string {
	switch {
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}), bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if decoded, err := decoder.Bytes(raw); err == nil {
			return string(decoded)
		}
	case bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}):
		return string(raw)
	}

	if utf8.Valid(raw) {
		return string(raw)
	}

	decoded, err := charmap.CodePage850.NewDecoder().Bytes(raw)
	if err != nil {
		// CP850 decoding cannot fail for single bytes; keep the raw text
		// as a last resort.
		return string(raw)
	}
	return string(decoded)
}
