// File path: internal/api/claim_handler.go
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/writway/writway/internal/claim"
	"github.com/writway/writway/internal/common"
	"github.com/writway/writway/internal/document"
	"github.com/writway/writway/internal/llm"
)

const minDescriptionChars = 10

type analyzeRequest struct {
	Description string `json:"description"`
}

type nextQuestionRequest struct {
	ClaimData         *claim.FormData `json:"claimData"`
	AnsweredQuestions []string        `json:"answeredQuestions"`
}

type generateRequest struct {
	ClaimData          *claim.FormData `json:"claimData"`
	InitialDescription string          `json:"initialDescription"`
}

type generatedDocuments struct {
	PDF  []byte `json:"pdf"`
	Word []byte `json:"word"`
}

// handleAnalyze runs one extraction pass over a free-text claim description.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req analyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	description := strings.TrimSpace(req.Description)
	if len([]rune(description)) < minDescriptionChars {
		writeFailure(w, http.StatusBadRequest, codeValidation, "description must be at least 10 characters")
		return
	}
	result, err := s.analyzer.Analyze(r.Context(), description)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrRateLimited):
			writeFailure(w, http.StatusInternalServerError, codeInternal, "extraction rate limited: "+err.Error())
		case errors.Is(err, llm.ErrInvalidCredential):
			writeFailure(w, http.StatusInternalServerError, codeInternal, "extraction credential rejected: "+err.Error())
		default:
			writeFailure(w, http.StatusInternalServerError, codeInternal, "claim analysis failed: "+err.Error())
		}
		return
	}
	logger.Info("api: claim analyzed", "missing", len(result.Missing), "ambiguous", len(result.Ambiguous), "inferred", len(result.Inferred))
	writeSuccess(w, http.StatusOK, result)
}

// handleNextQuestion returns the next unanswered required question for the
// submitted claim data, or completed=true once nothing remains.
func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	var req nextQuestionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ClaimData == nil {
		writeFailure(w, http.StatusBadRequest, codeValidation, "claimData is required")
		return
	}
	writeSuccess(w, http.StatusOK, claim.NextQuestion(req.ClaimData, req.AnsweredQuestions))
}

// handleGenerateTexts renders the text preview of the Form 7A package.
func (s *Server) handleGenerateTexts(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ClaimData == nil {
		writeFailure(w, http.StatusBadRequest, codeValidation, "claimData is required")
		return
	}
	writeSuccess(w, http.StatusOK, document.RenderTexts(req.ClaimData, req.InitialDescription))
}

// handleGenerateDocuments renders the PDF and DOCX files. Byte slices
// marshal as base64 in the JSON envelope.
func (s *Server) handleGenerateDocuments(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req generateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ClaimData == nil {
		writeFailure(w, http.StatusBadRequest, codeValidation, "claimData is required")
		return
	}
	docs, err := document.Generate(r.Context(), req.ClaimData, req.InitialDescription)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, codeInternal, "document generation failed: "+err.Error())
		return
	}
	logger.Info("api: documents generated", "pdfBytes", len(docs.PDF), "wordBytes", len(docs.Word))
	writeSuccess(w, http.StatusOK, generatedDocuments{PDF: docs.PDF, Word: docs.Word})
}
