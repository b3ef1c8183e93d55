// File path: internal/document/pdf.go
package document

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// RenderPDF writes the plan to a Letter-format PDF and returns the buffer.
func RenderPDF(plan *Plan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("nil content plan")
	}
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(plan.Title, false)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, plan.Court, "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, plan.Title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, plan.Subtitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, section := range plan.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, section.Heading, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, paragraph := range section.Paragraphs {
			pdf.MultiCell(0, 5, paragraph, "", "L", false)
			pdf.Ln(1)
		}
		for _, line := range section.Lines {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(55, 5, line.Label+":", "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, line.Value, "", "L", false)
		}
		pdf.Ln(3)
	}

	if plan.Footer != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 4, plan.Footer, "", 1, "C", false, 0, "")
	}

	if pdf.Err() {
		return nil, fmt.Errorf("assemble pdf: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
