package meeting

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// Export formats
const (
	FormatText = "txt"
	FormatDocx = "docx"
	FormatPDF  = "pdf"
)

// Content types served for each export format
var exportContentTypes = map[string]string{
	FormatText: "text/plain; charset=utf-8",
	FormatDocx: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatPDF:  "application/pdf",
}

const (
	docxFont     = "Times New Roman"
	docxFontSize = 12
)

// ExportFile is a rendered meeting summary ready for download
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// exportFilename builds "<Title_With_Underscores>_<first 8 of id>.<ext>"
func exportFilename(m *entities.Meeting, ext string) string {
	title := strings.ReplaceAll(m.Title, " ", "_")
	title = sanitizeFilename(title)
	return fmt.Sprintf("%s_%s.%s", title, m.ID.String()[:8], ext)
}

// RenderText renders the plain text export
func RenderText(m *entities.Meeting) string {
	rec := m.SummaryRecord()
	rec.Normalize()

	var b strings.Builder
	fmt.Fprintf(&b, "Meeting Summary: %s\n", m.Title)
	fmt.Fprintf(&b, "Type: %s\n", m.MeetingType)
	fmt.Fprintf(&b, "Date: %s\n", m.CreatedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString("SUMMARY:\n")
	b.WriteString(rec.Summary + "\n\n")

	b.WriteString("KEY POINTS:\n")
	for i, p := range rec.KeyPoints {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	b.WriteString("\n")

	b.WriteString("DECISIONS:\n")
	for i, d := range rec.Decisions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, d)
	}
	b.WriteString("\n")

	b.WriteString("ACTION ITEMS:\n")
	for i, a := range rec.ActionItems {
		fmt.Fprintf(&b, "%d. %s | Owner: %s | Due: %s\n", i+1, a.Task, a.Owner, a.DueDate)
	}
	b.WriteString("\n")

	b.WriteString("AGENDA BREAKDOWN:\n")
	for i, a := range rec.Agenda {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, a.Topic, a.Summary)
	}

	return b.String()
}

// RenderDocx renders the Word export
func RenderDocx(m *entities.Meeting) ([]byte, error) {
	rec := m.SummaryRecord()
	rec.Normalize()

	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	addRun(doc.AddParagraph(""), "Meeting Summary: "+m.Title, true, 16)
	addRun(doc.AddParagraph(""), "Type: "+m.MeetingType, false, docxFontSize)
	addRun(doc.AddParagraph(""), "Date: "+m.CreatedAt.Format("2006-01-02 15:04:05"), false, docxFontSize)

	addHeading(doc, "SUMMARY")
	addRun(doc.AddParagraph(""), rec.Summary, false, docxFontSize)

	addHeading(doc, "KEY POINTS")
	for _, p := range rec.KeyPoints {
		addRun(doc.AddParagraph(""), "• "+p, false, docxFontSize)
	}

	addHeading(doc, "DECISIONS")
	for _, d := range rec.Decisions {
		addRun(doc.AddParagraph(""), "• "+d, false, docxFontSize)
	}

	addHeading(doc, "ACTION ITEMS")
	for i, a := range rec.ActionItems {
		p := doc.AddParagraph("")
		addRun(p, fmt.Sprintf("%d. %s", i+1, a.Task), true, docxFontSize)
		addRun(p, fmt.Sprintf(" | Owner: %s | Due: %s", a.Owner, a.DueDate), false, docxFontSize)
	}

	addHeading(doc, "AGENDA BREAKDOWN")
	for i, a := range rec.Agenda {
		p := doc.AddParagraph("")
		addRun(p, fmt.Sprintf("%d. %s: ", i+1, a.Topic), true, docxFontSize)
		addRun(p, a.Summary, false, docxFontSize)
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write document: %w", err)
	}
	return buf.Bytes(), nil
}

func addHeading(doc *docx.RootDoc, title string) {
	doc.AddParagraph("")
	addRun(doc.AddParagraph(""), title, true, 14)
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(docxFont).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// PDF layout, in points on a letter page
const (
	pdfLineHeight = 16
	pdfTaskWidth  = 250
	pdfOwnerWidth = 100
	pdfDueWidth   = 100
)

// RenderPDF renders the PDF export: the text sections plus an action item table
func RenderPDF(m *entities.Meeting) ([]byte, error) {
	rec := m.SummaryRecord()
	rec.Normalize()

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(72, 72, 72)
	pdf.AddPage()
	// Core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 20, tr("Meeting Summary: "+m.Title), "", "L", false)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, pdfLineHeight, tr("Type: "+m.MeetingType), "", "L", false)
	pdf.MultiCell(0, pdfLineHeight, tr("Date: "+m.CreatedAt.Format("2006-01-02 15:04:05")), "", "L", false)
	pdf.Ln(20)

	pdfSection(pdf, tr, "SUMMARY", []string{rec.Summary})
	pdfSection(pdf, tr, "KEY POINTS", bulleted(rec.KeyPoints))
	pdfSection(pdf, tr, "DECISIONS", bulleted(rec.Decisions))

	if len(rec.ActionItems) > 0 {
		pdfHeading(pdf, tr, "ACTION ITEMS")

		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(128, 128, 128)
		pdf.SetTextColor(245, 245, 245)
		pdf.CellFormat(pdfTaskWidth, pdfLineHeight+4, "Task", "1", 0, "L", true, 0, "")
		pdf.CellFormat(pdfOwnerWidth, pdfLineHeight+4, "Owner", "1", 0, "L", true, 0, "")
		pdf.CellFormat(pdfDueWidth, pdfLineHeight+4, "Due Date", "1", 1, "L", true, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetFillColor(245, 245, 220)
		pdf.SetTextColor(0, 0, 0)
		for _, a := range rec.ActionItems {
			pdf.CellFormat(pdfTaskWidth, pdfLineHeight, tr(a.Task), "1", 0, "L", true, 0, "")
			pdf.CellFormat(pdfOwnerWidth, pdfLineHeight, tr(a.Owner), "1", 0, "L", true, 0, "")
			pdf.CellFormat(pdfDueWidth, pdfLineHeight, tr(a.DueDate), "1", 1, "L", true, 0, "")
		}
		pdf.Ln(15)
	}

	agenda := make([]string, 0, len(rec.Agenda))
	for i, a := range rec.Agenda {
		agenda = append(agenda, fmt.Sprintf("%d. %s: %s", i+1, a.Topic, a.Summary))
	}
	pdfSection(pdf, tr, "AGENDA BREAKDOWN", agenda)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfHeading(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 18, tr(title), "", "L", false)
	pdf.Ln(4)
}

func pdfSection(pdf *fpdf.Fpdf, tr func(string) string, title string, lines []string) {
	pdfHeading(pdf, tr, title)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range lines {
		pdf.MultiCell(0, pdfLineHeight, tr(line), "", "L", false)
	}
	pdf.Ln(15)
}

func bulleted(items []string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = "• " + it
	}
	return out
}
