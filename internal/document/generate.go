// File path: internal/document/generate.go
package document

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/writway/writway/internal/claim"
	"github.com/writway/writway/internal/common"
)

// Documents holds one generation's output pair. It has no identity or
// lifecycle; every request recomputes it from the form data.
type Documents struct {
	PDF  []byte
	Word []byte
}

// Generate builds one content plan and renders the PDF and Word outputs
// concurrently. The pair is all-or-nothing: if either render fails the call
// fails and no partial result is returned.
func Generate(ctx context.Context, data *claim.FormData, initialDescription string) (*Documents, error) {
	logger := common.Logger()
	plan := BuildPlan(data, initialDescription)
	logger.Debug("document: content plan built", "sections", len(plan.Sections))

	var docs Documents
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		pdf, err := RenderPDF(plan)
		if err != nil {
			return fmt.Errorf("pdf: %w", err)
		}
		docs.PDF = pdf
		return nil
	})
	g.Go(func() error {
		word, err := RenderDOCX(plan)
		if err != nil {
			return fmt.Errorf("docx: %w", err)
		}
		docs.Word = word
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("document: generation failed", "error", err)
		return nil, err
	}
	logger.Info("document: generation complete", "pdf_bytes", len(docs.PDF), "word_bytes", len(docs.Word))
	return &docs, nil
}
