// File path: internal/document/docx.go
package document

import (
	"bytes"
	"fmt"

	docx "github.com/fumiama/go-docx"
)

// RenderDOCX writes the plan to a Word document and returns the buffer. The
// content mirrors RenderPDF exactly because both consume the same plan.
func RenderDOCX(plan *Plan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("nil content plan")
	}
	doc := docx.New().WithDefaultTheme()

	court := doc.AddParagraph()
	court.Justification("center")
	court.AddText(plan.Court).Size("20")

	title := doc.AddParagraph()
	title.Justification("center")
	title.AddText(plan.Title).Size("32").Bold()

	subtitle := doc.AddParagraph()
	subtitle.Justification("center")
	subtitle.AddText(plan.Subtitle).Size("22")

	doc.AddParagraph()

	for _, section := range plan.Sections {
		heading := doc.AddParagraph()
		heading.AddText(section.Heading).Size("24").Bold()
		for _, paragraph := range section.Paragraphs {
			doc.AddParagraph().AddText(paragraph).Size("20")
		}
		for _, line := range section.Lines {
			p := doc.AddParagraph()
			p.AddText(line.Label + ": ").Size("20").Bold()
			p.AddText(line.Value).Size("20")
		}
		doc.AddParagraph()
	}

	if plan.Footer != "" {
		footer := doc.AddParagraph()
		footer.Justification("center")
		footer.AddText(plan.Footer).Size("16").Italic()
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}
