package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrUnsupportedFormat is returned for an output format with no renderer.
var ErrUnsupportedFormat = errors.New("unsupported output format")

type renderer func(w io.Writer, r Report) error

var renderers = map[string]renderer{
	constants.OutputFormatPretty: WritePretty,
	constants.OutputFormatCSV:    WriteCSV,
	constants.OutputFormatJSON:   WriteJSON,
	constants.OutputFormatPDF:    WritePDF,
}

var contentTypes = map[string]string{
	constants.OutputFormatPretty: "text/plain; charset=utf-8",
	constants.OutputFormatCSV:    "text/csv",
	constants.OutputFormatJSON:   "application/json",
	constants.OutputFormatPDF:    "application/pdf",
}

// Formats lists the supported output formats in sorted order.
func Formats() []string {
	formats := make([]string, 0, len(renderers))
	for f := range renderers {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// ContentType returns the MIME type of a format.
func ContentType(outputFormat string) string {
	if ct, ok := contentTypes[outputFormat]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Render writes the report in the requested format.
func Render(w io.Writer, outputFormat string, r Report) error {
	render, ok := renderers[strings.ToLower(outputFormat)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, outputFormat)
	}
	return render(w, r)
}

// WritePretty outputs a human-readable summary followed by the detail table.
func WritePretty(w io.Writer, r Report) error {
	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(w, "--- %s ---\n", r.Title); err != nil {
		return err
	}
	for _, s := range r.Sections {
		_, _ = p.Fprintf(w, "\n%s\n", s.Heading)
		for _, l := range s.Lines {
			_, _ = p.Fprintf(w, "  %-28s %s\n", l.Label, l.Value)
		}
	}
	if len(r.Table.Rows) == 0 {
		return nil
	}

	_, _ = p.Fprintf(w, "\n%s\n", strings.Join(r.Table.Header, " | "))
	rules := make([]string, len(r.Table.Header))
	for i, h := range r.Table.Header {
		rules[i] = strings.Repeat("_", len(h))
	}
	_, _ = p.Fprintf(w, "%s\n", strings.Join(rules, " | "))
	for _, row := range r.Table.Rows {
		if _, err := p.Fprintf(w, "%s\n", strings.Join(row, " | ")); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV outputs the detail table in comma-separated value format.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Table.Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteAll(r.Table.Rows); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	return nil
}

// WriteJSON outputs the raw result as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Data); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// WritePDF outputs a one-page A4 summary of the report's sections.
func WritePDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, tr(r.Title))
	pdf.Ln(16)

	for _, s := range r.Sections {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.Cell(0, 10, tr(s.Heading))
		pdf.Ln(11)
		for _, l := range s.Lines {
			style, size := "", 12.0
			if l.Emphasis {
				style, size = "B", 14
			}
			pdf.SetFont("Helvetica", style, size)
			pdf.Cell(100, 8, tr(l.Label))
			pdf.Cell(0, 8, tr(l.Value))
			pdf.Ln(8)
		}
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}
