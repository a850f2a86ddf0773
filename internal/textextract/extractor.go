// Package textextract converts statement PDFs into plain text, shelling out
// to pdftotext and falling back to OCR when a document carries no text layer.
package textextract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"finflow/internal/logging"
	"finflow/internal/parsererror"
)

// Extractor turns the raw bytes of a PDF document into plain text.
type Extractor interface {
	ExtractText(ctx context.Context, pdf []byte) (string, error)
}

// Options controls how CommandExtractor behaves.
type Options struct {
	// MinTextLength is the threshold below which the pdftotext output is
	// considered empty enough to warrant the OCR fallback.
	MinTextLength int
	// OCREnabled gates the tesseract fallback entirely.
	OCREnabled bool
	// PdftotextBin and TesseractBin override the binaries looked up on PATH.
	PdftotextBin string
	TesseractBin string
	PdftoppmBin  string
}

// DefaultOptions mirrors the extraction defaults used by config.
func DefaultOptions() Options {
	return Options{
		MinTextLength: 100,
		OCREnabled:    true,
		PdftotextBin:  "pdftotext",
		TesseractBin:  "tesseract",
		PdftoppmBin:   "pdftoppm",
	}
}

// CommandExtractor extracts text using the poppler and tesseract command-line
// tools. All subprocesses inherit the deadline of the caller's context.
type CommandExtractor struct {
	opts Options
	log  logging.Logger
}

// NewCommandExtractor returns an extractor configured with opts.
func NewCommandExtractor(opts Options, log logging.Logger) *CommandExtractor {
	if opts.PdftotextBin == "" {
		opts.PdftotextBin = "pdftotext"
	}
	if opts.TesseractBin == "" {
		opts.TesseractBin = "tesseract"
	}
	if opts.PdftoppmBin == "" {
		opts.PdftoppmBin = "pdftoppm"
	}
	if log == nil {
		log = logging.GetLogger()
	}
	return &CommandExtractor{opts: opts, log: log}
}

// ExtractText writes the PDF to a temporary file, runs pdftotext -layout over
// it and, when the result is too short to hold a text layer, rasterizes the
// pages and runs tesseract on each one.
func (e *CommandExtractor) ExtractText(ctx context.Context, pdf []byte) (string, error) {
	dir, err := os.MkdirTemp("", "finflow-extract-")
	if err != nil {
		return "", parsererror.NewExtractionError("", "creating temp directory", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	pdfFile := filepath.Join(dir, "statement.pdf")
	if err := os.WriteFile(pdfFile, pdf, 0o600); err != nil {
		return "", parsererror.NewExtractionError("", "writing temp pdf", err)
	}

	text, err := e.runPdftotext(ctx, pdfFile)
	if err != nil {
		return "", err
	}

	if len(strings.TrimSpace(text)) >= e.opts.MinTextLength {
		return CleanText(text), nil
	}

	if !e.opts.OCREnabled {
		e.log.WithField(logging.FieldReason, "ocr disabled").
			Warn("Extracted text below threshold, returning as-is")
		return CleanText(text), nil
	}

	e.log.WithFields(
		logging.Field{Key: "chars", Value: len(strings.TrimSpace(text))},
		logging.Field{Key: "threshold", Value: e.opts.MinTextLength},
	).Info("Text layer too small, falling back to OCR")

	ocrText, err := e.runOCR(ctx, dir, pdfFile)
	if err != nil {
		return "", err
	}
	return CleanText(ocrText), nil
}

func (e *CommandExtractor) runPdftotext(ctx context.Context, pdfFile string) (string, error) {
	tempFile := pdfFile + ".txt"

	cmd := exec.CommandContext(ctx, e.opts.PdftotextBin, "-layout", pdfFile, tempFile)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", parsererror.NewExtractionError("", "pdftotext timed out", ctx.Err())
		}
		e.log.WithError(err).Error("Failed to run pdftotext command")
		return "", parsererror.NewExtractionError("", "running pdftotext", err)
	}

	output, err := os.ReadFile(tempFile)
	if err != nil {
		return "", parsererror.NewExtractionError("", "reading extracted text", err)
	}
	return string(output), nil
}

// runOCR rasterizes each page with pdftoppm and feeds the images to
// tesseract, concatenating the per-page output in page order.
func (e *CommandExtractor) runOCR(ctx context.Context, dir, pdfFile string) (string, error) {
	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, e.opts.PdftoppmBin, "-r", "300", "-png", pdfFile, prefix)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", parsererror.NewExtractionError("", "pdftoppm timed out", ctx.Err())
		}
		return "", parsererror.NewExtractionError("", "rasterizing pdf for ocr", err)
	}

	pages, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return "", parsererror.NewExtractionError("", "listing rasterized pages", err)
	}
	if len(pages) == 0 {
		return "", parsererror.NewExtractionError("", "rasterizing pdf for ocr", fmt.Errorf("no pages produced"))
	}
	sort.Strings(pages)

	var sb strings.Builder
	for _, page := range pages {
		out := strings.TrimSuffix(page, ".png")
		cmd := exec.CommandContext(ctx, e.opts.TesseractBin, page, out)
		if err := cmd.Run(); err != nil {
			if ctx.Err() != nil {
				return "", parsererror.NewExtractionError("", "tesseract timed out", ctx.Err())
			}
			return "", parsererror.NewExtractionError("", "running tesseract", err)
		}
		pageText, err := os.ReadFile(out + ".txt")
		if err != nil {
			return "", parsererror.NewExtractionError("", "reading ocr output", err)
		}
		sb.Write(pageText)
		sb.WriteString("\n")
	}

	e.log.WithField(logging.FieldCount, len(pages)).Info("OCR fallback completed")
	return sb.String(), nil
}
