// =============================================================================
// PO Reconciliation - PDF Text Table Reader
// =============================================================================
//
// This file extracts tabular data from PDFs that carry a text layer. It is a
// best-effort plain-text table heuristic, not a document-understanding
// system, and it performs no OCR.
//
// EXTRACTION PROCESS:
//   1. Pull positioned text spans from every page (ledongthuc/pdf)
//   2. Group spans into visual lines by Y coordinate, top of page first
//   3. Within a line, order spans by X and re-insert column gaps as runs of
//      two spaces wherever the horizontal gap is clearly wider than normal
//      word spacing
//   4. Detect a consistent column delimiter among {tab, 2+ spaces, pipe} by
//      requiring the first line and at least one of the next four lines to
//      split into a compatible cell count (one missing trailing cell is
//      tolerated)
//
// If fewer than 2 lines of text are extractable, or no delimiter candidate
// satisfies the consistency check, the file fails with a ParseError telling
// the user to re-export as spreadsheet/CSV.
//
// =============================================================================

package ingest

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"poreconcile/internal/types"
)

// yTolerance is the maximum Y distance between spans still considered part
// of the same visual line.
const yTolerance = 2.0

// readPDF extracts page text in reading order and applies the delimiter
// heuristic.
func readPDF(path string) ([]types.RawTable, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &ParseError{
			Filename: filepath.Base(path),
			Reason:   "PDF could not be decoded; re-export the document as spreadsheet/CSV",
			Err:      err,
		}
	}
	defer f.Close()

	var lines []string
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		lines = append(lines, extractLines(page.Content().Text)...)
	}

	if len(lines) < 2 {
		return nil, &ParseError{
			Filename: filepath.Base(path),
			Reason:   "PDF has no extractable text table (scanned image?); re-export as spreadsheet/CSV",
		}
	}

	grid, ok := DetectDelimitedRows(lines)
	if !ok {
		return nil, &ParseError{
			Filename: filepath.Base(path),
			Reason:   "no consistent column layout found in PDF text; re-export as spreadsheet/CSV",
		}
	}

	return []types.RawTable{{Sheet: "", Cells: grid}}, nil
}

// =============================================================================
// LINE RECONSTRUCTION
// =============================================================================

// pdfLine is one visual line being assembled from positioned spans.
type pdfLine struct {
	y     float64
	spans []pdf.Text
}

// extractLines groups positioned text spans into visual lines and renders
// each line as a string with column gaps preserved as double spaces.
func extractLines(texts []pdf.Text) []string {
	var rows []pdfLine

	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}

		placed := false
		for i := range rows {
			if abs(rows[i].y-t.Y) < yTolerance {
				rows[i].spans = append(rows[i].spans, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, pdfLine{y: t.Y, spans: []pdf.Text{t}})
		}
	}

	// PDF coordinates grow upward, so reading order is descending Y.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row.spans, func(i, j int) bool { return row.spans[i].X < row.spans[j].X })
		lines = append(lines, renderLine(row.spans))
	}
	return lines
}

// renderLine joins the spans of one visual line, widening clear column gaps
// to two spaces so the downstream delimiter heuristic can see them.
func renderLine(spans []pdf.Text) string {
	var b strings.Builder

	for i, t := range spans {
		if i > 0 {
			prev := spans[i-1]
			gap := t.X - (prev.X + prev.W)

			// A gap wider than roughly an em at the span's font size is a
			// column boundary, not word spacing.
			columnGap := prev.FontSize
			if columnGap <= 0 {
				columnGap = 6
			}
			switch {
			case gap > columnGap:
				b.WriteString("  ")
			case gap > 0.5:
				b.WriteString(" ")
			}
		}
		b.WriteString(t.S)
	}

	return b.String()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// =============================================================================
// DELIMITER DETECTION
// =============================================================================

// multiSpace matches runs of two or more spaces, the layout most
// text-rendered PDF tables collapse into.
var multiSpace = regexp.MustCompile(` {2,}`)

// DetectDelimitedRows tries each delimiter candidate in a fixed order and
// splits the lines with the first one that yields a consistent cell count.
//
// CONSISTENCY CHECK:
//   The first line must split into at least 2 cells, and at least one of
//   the next four lines must split into a compatible cell count (equal, or
//   exactly one short to tolerate a missing trailing cell).
//
// RETURNS:
//   - The split grid and true on success.
//   - nil and false when no candidate satisfies the check.
func DetectDelimitedRows(lines []string) ([][]string, bool) {
	splitters := []func(string) []string{
		splitTab,
		splitMultiSpace,
		splitPipe,
	}

	for _, split := range splitters {
		if grid, ok := trySplitter(lines, split); ok {
			return grid, true
		}
	}
	return nil, false
}

// trySplitter applies one candidate splitter and verifies consistency.
func trySplitter(lines []string, split func(string) []string) ([][]string, bool) {
	first := split(lines[0])
	want := len(first)
	if want < 2 {
		return nil, false
	}

	confirmed := false
	for i := 1; i < len(lines) && i <= 4; i++ {
		got := len(split(lines[i]))
		if got == want || got == want-1 {
			confirmed = true
			break
		}
	}
	if !confirmed {
		return nil, false
	}

	grid := make([][]string, 0, len(lines))
	for _, line := range lines {
		grid = append(grid, split(line))
	}
	return grid, true
}

func splitTab(line string) []string {
	if !strings.Contains(line, "\t") {
		return []string{line}
	}
	return trimCells(strings.Split(line, "\t"))
}

func splitMultiSpace(line string) []string {
	return trimCells(multiSpace.Split(line, -1))
}

func splitPipe(line string) []string {
	if !strings.Contains(line, "|") {
		return []string{line}
	}
	return trimCells(strings.Split(line, "|"))
}

func trimCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
