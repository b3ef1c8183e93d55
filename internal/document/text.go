// File path: internal/document/text.go
package document

import (
	"strings"

	"github.com/writway/writway/internal/claim"
)

// TextResult is the text-variant generation output: the populated Form 7A
// and Schedule "A" bodies plus classification, legal bases, and review
// warnings.
type TextResult struct {
	ClaimType     string   `json:"claimType"`
	LegalBases    []string `json:"legalBases"`
	Form7AText    string   `json:"form7AText"`
	ScheduleAText string   `json:"scheduleAText"`
	Warnings      []string `json:"warnings"`
}

// RenderTexts produces the text variant from the same content plan the
// binary writers use.
func RenderTexts(data *claim.FormData, initialDescription string) TextResult {
	if data == nil {
		data = &claim.FormData{}
	}
	plan := BuildPlan(data, initialDescription)
	return TextResult{
		ClaimType:     classifyClaim(data),
		LegalBases:    legalBases(data),
		Form7AText:    renderPlanText(plan),
		ScheduleAText: renderScheduleText(data, initialDescription),
		Warnings:      reviewWarnings(data),
	}
}

func renderPlanText(plan *Plan) string {
	var b strings.Builder
	b.WriteString(plan.Court)
	b.WriteString("\n")
	b.WriteString(plan.Title)
	b.WriteString(" — ")
	b.WriteString(plan.Subtitle)
	b.WriteString("\n\n")
	for _, section := range plan.Sections {
		b.WriteString(strings.ToUpper(section.Heading))
		b.WriteString("\n")
		for _, paragraph := range section.Paragraphs {
			b.WriteString(paragraph)
			b.WriteString("\n")
		}
		for _, line := range section.Lines {
			b.WriteString(line.Label)
			b.WriteString(": ")
			b.WriteString(line.Value)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if plan.Footer != "" {
		b.WriteString(plan.Footer)
		b.WriteString("\n")
	}
	return b.String()
}

func renderScheduleText(data *claim.FormData, initialDescription string) string {
	var b strings.Builder
	b.WriteString("SCHEDULE \"A\" — STATEMENT OF CLAIM\n\n")
	b.WriteString(statementBody(data, initialDescription))
	b.WriteString("\n")
	if a := data.Amount; a != nil {
		if claim.HasValue(a.PrincipalAmount) {
			b.WriteString("\nThe plaintiff claims the principal amount of $")
			b.WriteString(strings.TrimSpace(a.PrincipalAmount))
			b.WriteString(".\n")
		}
		if a.ClaimingInterest != nil && *a.ClaimingInterest {
			line := "The plaintiff also claims prejudgment and postjudgment interest"
			if claim.HasValue(a.InterestRate) {
				line += " at " + a.InterestRate + "% per year"
			}
			if claim.HasValue(a.InterestStartDate) {
				line += " from " + a.InterestStartDate
			}
			b.WriteString(line)
			b.WriteString(".\n")
		}
		if a.ClaimingCosts != nil && *a.ClaimingCosts {
			b.WriteString("The plaintiff claims the costs of this action.\n")
		}
	}
	if r := data.Remedy; r != nil && r.SeekingReturnOfProperty != nil && *r.SeekingReturnOfProperty {
		b.WriteString("The plaintiff seeks the return of property")
		if claim.HasValue(r.PropertyDescription) {
			b.WriteString(": ")
			b.WriteString(r.PropertyDescription)
		}
		b.WriteString(".\n")
	}
	return b.String()
}

func classifyClaim(data *claim.FormData) string {
	if data.Eligibility != nil && claim.HasValue(data.Eligibility.ClaimType) {
		return strings.ToLower(data.Eligibility.ClaimType)
	}
	if data.Remedy != nil && data.Remedy.SeekingReturnOfProperty != nil && *data.Remedy.SeekingReturnOfProperty {
		return "return of property"
	}
	return "other"
}

func legalBases(data *claim.FormData) []string {
	var bases []string
	switch classifyClaim(data) {
	case "money owed", "money":
		bases = append(bases, "Debt")
	case "damages":
		bases = append(bases, "Damages")
	case "return of property":
		bases = append(bases, "Recovery of personal property")
	}
	if data.ClaimDetails != nil && data.ClaimDetails.HasWrittenContract != nil && *data.ClaimDetails.HasWrittenContract {
		bases = append(bases, "Breach of contract")
	}
	if data.Amount != nil && data.Amount.ClaimingInterest != nil && *data.Amount.ClaimingInterest {
		bases = append(bases, "Prejudgment interest")
	}
	if len(bases) == 0 {
		bases = append(bases, "General claim")
	}
	return bases
}

// reviewWarnings flags gaps a clerk would bounce the filing for. They never
// block generation.
func reviewWarnings(data *claim.FormData) []string {
	warnings := []string{}
	if data.Eligibility == nil || !claim.HasValue(data.Eligibility.TotalAmount) {
		warnings = append(warnings, "Total claim amount is missing.")
	}
	if data.Eligibility != nil && data.Eligibility.IsAmountUnder35000 != nil && !*data.Eligibility.IsAmountUnder35000 {
		warnings = append(warnings, "Claim may exceed the $35,000 Small Claims Court limit.")
	}
	if data.Eligibility != nil && data.Eligibility.IsBasedInOntario != nil && !*data.Eligibility.IsBasedInOntario {
		warnings = append(warnings, "Claim may fall outside Ontario jurisdiction.")
	}
	if data.Plaintiff == nil || !claim.HasValue(data.Plaintiff.FullName) {
		warnings = append(warnings, "Plaintiff name is missing.")
	}
	if data.Defendant == nil || !claim.HasValue(data.Defendant.FullName) {
		warnings = append(warnings, "Defendant name is missing.")
	}
	if data.Defendant != nil && !claim.HasValue(data.Defendant.Address) {
		warnings = append(warnings, "Defendant address is missing; it is needed to serve the claim.")
	}
	if statementBody(data, "") == statementPlaceholder {
		warnings = append(warnings, "Statement of claim text is missing.")
	}
	if data.Evidence == nil || len(data.Evidence.Documents) == 0 {
		warnings = append(warnings, "No supporting documents listed.")
	}
	return warnings
}
