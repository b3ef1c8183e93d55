// File path: internal/document/plan.go
package document

import (
	"fmt"
	"strings"

	"github.com/writway/writway/internal/claim"
)

const statementPlaceholder = "[Statement of claim to be provided.]"

// Line is one labeled value in a rendered section.
type Line struct {
	Label string
	Value string
}

// Section is a heading plus its lines and free paragraphs, in render order.
type Section struct {
	Heading    string
	Lines      []Line
	Paragraphs []string
}

// Plan is the format-neutral content of one generated claim package. Both
// the PDF and DOCX writers (and the text renderer) consume the same plan, so
// the two output formats cannot silently diverge in content.
type Plan struct {
	Title    string
	Subtitle string
	Court    string
	Sections []Section
	Footer   string
}

// BuildPlan walks the form sections in Form 7A order and emits a section
// only when its object is present, and a line only when the field holds a
// value. Amounts keep their stored string form with a literal "$" prefix.
func BuildPlan(data *claim.FormData, initialDescription string) *Plan {
	if data == nil {
		data = &claim.FormData{}
	}
	plan := &Plan{
		Title:    "Plaintiff's Claim",
		Subtitle: "Form 7A",
		Court:    "Ontario Superior Court of Justice — Small Claims Court",
		Footer:   "Generated by WritWay. Review all entries before filing.",
	}

	if e := data.Eligibility; e != nil {
		section := Section{Heading: "Claim Overview"}
		addLine(&section, "Claim type", e.ClaimType)
		addAmountLine(&section, "Total amount claimed", e.TotalAmount)
		addLine(&section, "Date issue arose", e.IssueDate)
		addBoolLine(&section, "Within $35,000 limit", e.IsAmountUnder35000)
		addBoolLine(&section, "Ontario jurisdiction", e.IsBasedInOntario)
		appendSection(plan, section)
	}

	if p := data.Plaintiff; p != nil {
		section := Section{Heading: "Plaintiff"}
		addLine(&section, "Full name", p.FullName)
		addBoolLine(&section, "Business", p.IsBusiness)
		addLine(&section, "Business name", p.BusinessName)
		addLine(&section, "Address", p.Address)
		addLine(&section, "City", p.City)
		addLine(&section, "Province", p.Province)
		addLine(&section, "Postal code", p.PostalCode)
		addLine(&section, "Phone", p.Phone)
		addLine(&section, "Email", p.Email)
		appendSection(plan, section)
	}

	if d := data.Defendant; d != nil {
		section := Section{Heading: "Defendant"}
		addLine(&section, "Full name", d.FullName)
		addBoolLine(&section, "Business", d.IsBusiness)
		addLine(&section, "Business name", d.BusinessName)
		addLine(&section, "Address", d.Address)
		addLine(&section, "City", d.City)
		addLine(&section, "Province", d.Province)
		addLine(&section, "Postal code", d.PostalCode)
		appendSection(plan, section)
	}

	statement := Section{Heading: "Statement of Claim (Schedule \"A\")"}
	statement.Paragraphs = append(statement.Paragraphs, statementBody(data, initialDescription))
	if cd := data.ClaimDetails; cd != nil {
		addLine(&statement, "Date of incident", cd.IncidentDate)
		addLine(&statement, "Location", cd.IncidentLocation)
		addLine(&statement, "Agreement type", cd.AgreementType)
		addBoolLine(&statement, "Written contract", cd.HasWrittenContract)
		addBoolLine(&statement, "Resolution attempted", cd.AttemptedResolution)
		addLine(&statement, "Resolution details", cd.ResolutionDetails)
	}
	plan.Sections = append(plan.Sections, statement)

	if a := data.Amount; a != nil {
		section := Section{Heading: "Amount Claimed"}
		addAmountLine(&section, "Principal amount", a.PrincipalAmount)
		addBoolLine(&section, "Claiming interest", a.ClaimingInterest)
		if claim.HasValue(a.InterestRate) {
			addLine(&section, "Interest rate", a.InterestRate+"% per year")
		}
		addLine(&section, "Interest from", a.InterestStartDate)
		addBoolLine(&section, "Claiming court costs", a.ClaimingCosts)
		appendSection(plan, section)
	}

	if r := data.Remedy; r != nil {
		section := Section{Heading: "Remedy Sought"}
		if r.SeekingMoney != nil && *r.SeekingMoney {
			section.Paragraphs = append(section.Paragraphs, "The plaintiff asks the court to order payment of the amount claimed.")
		}
		if r.SeekingReturnOfProperty != nil && *r.SeekingReturnOfProperty {
			line := "The plaintiff asks for the return of property."
			if claim.HasValue(r.PropertyDescription) {
				line = fmt.Sprintf("The plaintiff asks for the return of the following property: %s.", r.PropertyDescription)
			}
			section.Paragraphs = append(section.Paragraphs, line)
		}
		if claim.HasValue(r.OtherRemedy) {
			section.Paragraphs = append(section.Paragraphs, "Other remedy sought: "+r.OtherRemedy+".")
		}
		appendSection(plan, section)
	}

	if ev := data.Evidence; ev != nil {
		section := Section{Heading: "Supporting Evidence"}
		if len(ev.Documents) > 0 {
			addLine(&section, "Documents", strings.Join(ev.Documents, ", "))
		}
		addBoolLine(&section, "Witnesses", ev.HasWitnesses)
		addLine(&section, "Witness details", ev.WitnessDetails)
		appendSection(plan, section)
	}

	return plan
}

func statementBody(data *claim.FormData, initialDescription string) string {
	if strings.TrimSpace(initialDescription) != "" {
		return strings.TrimSpace(initialDescription)
	}
	if data.ClaimDetails != nil && claim.HasValue(data.ClaimDetails.Description) {
		return strings.TrimSpace(data.ClaimDetails.Description)
	}
	return statementPlaceholder
}

func addLine(section *Section, label, value string) {
	if claim.HasValue(value) {
		section.Lines = append(section.Lines, Line{Label: label, Value: value})
	}
}

// addAmountLine renders the stored amount string verbatim behind a "$"
// prefix; no rounding or currency formatting is applied.
func addAmountLine(section *Section, label, value string) {
	if claim.HasValue(value) {
		section.Lines = append(section.Lines, Line{Label: label, Value: "$" + strings.TrimSpace(value)})
	}
}

func addBoolLine(section *Section, label string, value *bool) {
	if value == nil {
		return
	}
	text := "No"
	if *value {
		text = "Yes"
	}
	section.Lines = append(section.Lines, Line{Label: label, Value: text})
}

// appendSection drops sections whose object was present but held no usable
// content, so an empty struct does not produce a bare heading.
func appendSection(plan *Plan, section Section) {
	if len(section.Lines) == 0 && len(section.Paragraphs) == 0 {
		return
	}
	plan.Sections = append(plan.Sections, section)
}
