package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/songyh0828/groqify-chatbot/internal/chat"
)

const (
	pdfMargin     = 40.0
	pdfLineHeight = 14.0
	pdfFontSize   = 12.0

	timestampLayout = "2006-01-02 15:04:05"
)

// ToPDF renders the transcript as a paginated letter-size document: a bold
// "Role (timestamp):" header per message, a greedily word-wrapped body and a
// blank separator line.
func ToPDF(messages []chat.Message) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	maxWidth := pageWidth - 2*pdfMargin

	for _, m := range messages {
		ts := m.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}

		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.CellFormat(0, pdfLineHeight, fmt.Sprintf("%s (%s):", roleLabel(m.Role), ts.Format(timestampLayout)), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", pdfFontSize)
		for _, line := range wrapText(pdf, m.Content, maxWidth) {
			pdf.CellFormat(0, pdfLineHeight, line, "", 1, "L", false, 0, "")
		}
		pdf.CellFormat(0, pdfLineHeight, "", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// wrapText greedily packs words into lines no wider than maxWidth measured
// with the current font.
func wrapText(pdf *fpdf.Fpdf, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	lines := make([]string, 0, 1)
	line := ""
	for _, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if pdf.GetStringWidth(candidate) <= maxWidth {
			line = candidate
		} else {
			lines = append(lines, line)
			line = word
		}
	}
	return append(lines, line)
}
