// Package export renders task lists as PDF, CSV, JSON or YAML reports.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"taskmaster/internal/service"
)

// Format is a report format.
type Format string

// Supported formats.
const (
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %s (use pdf, csv, json or yaml)", s)
}

// FormatFromPath guesses the format from a file extension.
// Unknown extensions default to PDF.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatPDF
}

// Write renders tasks to w in the given format.
func Write(w io.Writer, format Format, tasks []service.Task, generated time.Time) error {
	switch format {
	case FormatPDF:
		return WritePDF(w, tasks, generated)
	case FormatCSV:
		return WriteCSV(w, tasks)
	case FormatJSON:
		return WriteJSON(w, tasks)
	case FormatYAML:
		return WriteYAML(w, tasks)
	default:
		return fmt.Errorf("unknown format %s", format)
	}
}

// WritePDF writes a one-column A4 report with a line per task and the
// description, if any, indented below it.
func WritePDF(w io.Writer, tasks []service.Task, generated time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(generated)
	pdf.SetTitle("Tasks", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(40, 6, fmt.Sprintf("Generated %s, %d task(s), %d done",
		generated.Format("2006-01-02 15:04"), len(tasks), countDone(tasks)))
	pdf.Ln(10)

	for _, t := range tasks {
		mark := "[ ]"
		if t.IsCompleted {
			mark = "[x]"
		}
		pdf.SetFont("Arial", "", 10)
		line := fmt.Sprintf("%s #%d %s", mark, t.ID, t.Title)
		if t.CreatedDate != "" {
			line += "  (" + t.CreatedDate + ")"
		}
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)

		if t.Description != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.SetX(pdf.GetX() + 8)
			pdf.MultiCell(0, 5, tr(t.Description), "0", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// WriteCSV writes a header row followed by one row per task.
func WriteCSV(w io.Writer, tasks []service.Task) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "title", "description", "created_date", "is_completed"})
	for _, t := range tasks {
		_ = cw.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			t.Description,
			t.CreatedDate,
			strconv.FormatBool(t.IsCompleted),
		})
	}
	cw.Flush()
	return cw.Error()
}

type record struct {
	ID          int64  `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description,omitempty"`
	CreatedDate string `json:"created_date" yaml:"created_date"`
	IsCompleted bool   `json:"is_completed" yaml:"is_completed"`
}

func records(tasks []service.Task) []record {
	out := make([]record, len(tasks))
	for i, t := range tasks {
		out[i] = record(t)
	}
	return out
}

// WriteJSON writes the tasks as an indented JSON array using the
// snake_case field names the server accepts.
func WriteJSON(w io.Writer, tasks []service.Task) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records(tasks))
}

// WriteYAML writes the tasks as a YAML sequence.
func WriteYAML(w io.Writer, tasks []service.Task) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records(tasks)); err != nil {
		return err
	}
	return enc.Close()
}

func countDone(tasks []service.Task) int {
	n := 0
	for _, t := range tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}
