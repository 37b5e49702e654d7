package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner executes an external command and returns its output.
// Extracted as an interface so tests can avoid spawning processes.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor handles PDF files by shelling out to pdftotext.
type Extractor struct {
	runner CommandRunner
}

// New creates a new PDF extractor using the system pdftotext binary.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates a PDF extractor with a custom command runner.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// CheckAvailable returns an error if pdftotext is not installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return "pdftotext is required for PDF ingestion.\n" +
		"  macOS:  brew install poppler\n" +
		"  Debian: apt install poppler-utils\n" +
		"  Fedora: dnf install poppler-utils"
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Format-specific
}

// Extract converts the PDF bytes to plain text via pdftotext.
// The data is written to a temporary file because pdftotext reads
// from disk; output goes to stdout with layout preserved.
func (e *Extractor) Extract(ctx context.Context, _ string, data []byte) (string, error) {
	if data == nil {
		return "", domain.ErrInvalidInput
	}
	if err := CheckAvailable(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "recall-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	output, err := e.runner.Run(ctx, "pdftotext", "-layout", filepath.Clean(tmpPath), "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}

	return string(output), nil
}
