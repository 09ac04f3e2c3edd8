package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

const (
	pageWidth  = 180.0 // A4 minus 15mm margins
	lineHeight = 5.0
	baseSize   = 10.0
)

// Renderer converts the markdown report to an A4 PDF
type Renderer struct {
	logger arbor.ILogger
}

// NewRenderer creates a new PDF renderer
func NewRenderer(logger arbor.ILogger) *Renderer {
	return &Renderer{logger: logger}
}

// Render converts markdown to PDF bytes. Core fonts are single-byte, so
// Swedish letters survive while emoji are dropped.
func (s *Renderer) Render(markdown, title string) ([]byte, error) {
	s.logger.Debug().
		Int("markdown_len", len(markdown)).
		Str("title", title).
		Msg("Rendering report PDF")

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	doc.SetAutoPageBreak(true, 15)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(title, true)
	doc.SetCreator("brfanalys", true)
	doc.SetFooterFunc(func() {
		doc.SetY(-12)
		doc.SetFont("Arial", "I", 7)
		doc.CellFormat(0, 5, tr(fmt.Sprintf("%s  -  sida %d", latin1(title), doc.PageNo())), "", 0, "C", false, 0, "")
	})
	doc.AddPage()
	doc.SetFont("Arial", "", baseSize)

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	source := []byte(markdown)
	root := md.Parser().Parse(text.NewReader(source))

	r := &pdfRenderer{pdf: doc, source: source, tr: tr, size: baseSize}
	if err := ast.Walk(root, r.walk); err != nil {
		s.logger.Error().Err(err).Msg("Failed to render PDF")
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write PDF output")
		return nil, fmt.Errorf("failed to write PDF output: %w", err)
	}

	s.logger.Debug().Int("pdf_size", buf.Len()).Msg("PDF rendered")
	return buf.Bytes(), nil
}

type pdfRenderer struct {
	pdf       *fpdf.Fpdf
	source    []byte
	tr        func(string) string
	size      float64
	bold      bool
	italic    bool
	listLevel int
}

func (r *pdfRenderer) updateFont() {
	style := ""
	if r.bold {
		style += "B"
	}
	if r.italic {
		style += "I"
	}
	r.pdf.SetFont("Arial", style, r.size)
}

func (r *pdfRenderer) write(s string) {
	r.pdf.Write(lineHeight, r.tr(latin1(s)))
}

func (r *pdfRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		if entering {
			r.pdf.Ln(4)
			r.pdf.SetFont("Arial", "B", headingSize(node.Level))
		} else {
			r.pdf.Ln(7)
			r.updateFont()
		}
	case *ast.Paragraph:
		if !entering && r.listLevel == 0 {
			r.pdf.Ln(7)
		}
	case *ast.Text:
		if entering {
			r.write(string(node.Segment.Value(r.source)))
			if node.SoftLineBreak() {
				r.write(" ")
			}
			if node.HardLineBreak() {
				r.pdf.Ln(lineHeight)
			}
		}
	case *ast.Emphasis:
		if node.Level == 2 {
			r.bold = entering
		} else {
			r.italic = entering
		}
		r.updateFont()
	case *ast.List:
		if entering {
			r.listLevel++
		} else {
			r.listLevel--
			if r.listLevel == 0 {
				r.pdf.Ln(7)
			}
		}
	case *ast.ListItem:
		if entering {
			if r.pdf.GetX() > 16 {
				r.pdf.Ln(lineHeight)
			}
			r.pdf.SetX(15 + float64(r.listLevel-1)*5)
			r.write("- ")
		} else {
			r.pdf.Ln(lineHeight)
		}
	case *ast.ThematicBreak:
		if entering {
			r.pdf.Ln(2)
			r.pdf.Line(15, r.pdf.GetY(), 195, r.pdf.GetY())
			r.pdf.Ln(4)
		}
	case *extast.Table:
		if entering {
			r.renderTable(r.collectRows(node))
			return ast.WalkSkipChildren, nil
		}
	}
	return ast.WalkContinue, nil
}

func headingSize(level int) float64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 13
	case 3:
		return 11
	default:
		return baseSize
	}
}

// collectRows flattens a table into rows; the header row comes first.
func (r *pdfRenderer) collectRows(table *extast.Table) [][]string {
	var rows [][]string
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *extast.TableHeader, *extast.TableRow:
			var row []string
			for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
				row = append(row, r.cellText(cell))
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func (r *pdfRenderer) cellText(cell ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(cell, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			sb.Write(t.Segment.Value(r.source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

func (r *pdfRenderer) renderTable(rows [][]string) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return
	}
	numCols := len(rows[0])
	fontSize := 8.5
	cellLine := 4.0

	widths := r.columnWidths(rows, numCols, fontSize)

	r.pdf.Ln(1)
	for i, row := range rows {
		header := i == 0
		if header {
			r.pdf.SetFont("Arial", "B", fontSize)
			r.pdf.SetFillColor(230, 230, 230)
		} else {
			r.pdf.SetFont("Arial", "", fontSize)
		}

		cells := make([][]string, numCols)
		maxLines := 1
		for j := 0; j < numCols; j++ {
			value := ""
			if j < len(row) {
				value = latin1(row[j])
			}
			cells[j] = r.pdf.SplitText(value, widths[j]-2)
			if len(cells[j]) > maxLines {
				maxLines = len(cells[j])
			}
		}

		rowHeight := float64(maxLines)*cellLine + 2
		_, pageHeight := r.pdf.GetPageSize()
		if r.pdf.GetY()+rowHeight > pageHeight-15 {
			r.pdf.AddPage()
		}

		x, y := 15.0, r.pdf.GetY()
		for j := 0; j < numCols; j++ {
			style := "D"
			if header {
				style = "FD"
			}
			r.pdf.Rect(x, y, widths[j], rowHeight, style)
			for k, line := range cells[j] {
				r.pdf.SetXY(x+1, y+1+float64(k)*cellLine)
				r.pdf.CellFormat(widths[j]-2, cellLine, r.tr(line), "", 0, "L", false, 0, "")
			}
			x += widths[j]
		}
		r.pdf.SetXY(15, y+rowHeight)
	}

	r.pdf.Ln(4)
	r.updateFont()
}

// columnWidths sizes columns to their widest cell and scales the result to
// the page width.
func (r *pdfRenderer) columnWidths(rows [][]string, numCols int, fontSize float64) []float64 {
	r.pdf.SetFont("Arial", "B", fontSize)
	widths := make([]float64, numCols)
	for _, row := range rows {
		for j := 0; j < numCols && j < len(row); j++ {
			w := r.pdf.GetStringWidth(r.tr(latin1(row[j]))) + 4
			if w > widths[j] {
				widths[j] = w
			}
		}
	}

	total := 0.0
	for j := range widths {
		if widths[j] < 15 {
			widths[j] = 15
		}
		if widths[j] > pageWidth/2 {
			widths[j] = pageWidth / 2
		}
		total += widths[j]
	}
	scale := pageWidth / total
	for j := range widths {
		widths[j] *= scale
	}
	return widths
}

// latin1 reduces s to runes the core fonts can measure and draw.
// Typographic punctuation is folded to ASCII; emoji and other symbols
// outside Latin-1 are dropped.
func latin1(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, c := range s {
		switch {
		case c == '\t':
			sb.WriteByte(' ')
		case c < 0x20:
			continue
		case c <= 0xFF:
			sb.WriteRune(c)
		case c == '–', c == '—', c == '•':
			sb.WriteByte('-')
		case c == '‘', c == '’':
			sb.WriteByte('\'')
		case c == '“', c == '”':
			sb.WriteByte('"')
		case c == '…':
			sb.WriteString("...")
		case c == '€':
			sb.WriteString("EUR")
		}
	}
	return sb.String()
}
