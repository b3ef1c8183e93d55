// File path: internal/document/plan_test.go
package document

import (
	"strings"
	"testing"

	"github.com/writway/writway/internal/claim"
)

func boolPtr(v bool) *bool { return &v }

func sampleFormData() *claim.FormData {
	return &claim.FormData{
		Eligibility: &claim.Eligibility{
			TotalAmount:        "5500",
			IsAmountUnder35000: boolPtr(true),
			IsBasedInOntario:   boolPtr(true),
			IssueDate:          "2024-03-15",
			ClaimType:          "money owed",
		},
		Plaintiff: &claim.Plaintiff{
			FullName: "Jordan Avery",
			Address:  "12 King St W",
			City:     "Toronto",
		},
		Defendant: &claim.Defendant{
			FullName: "Acme Renovations Inc.",
			Address:  "400 Bay St",
		},
		ClaimDetails: &claim.ClaimDetails{
			Description:  "Paid a deposit for renovation work that was never started.",
			IncidentDate: "2024-03-15",
		},
		Amount: &claim.Amount{
			PrincipalAmount:  "5500",
			ClaimingInterest: boolPtr(true),
			InterestRate:     "2",
			ClaimingCosts:    boolPtr(true),
		},
		Remedy: &claim.Remedy{
			SeekingMoney: boolPtr(true),
		},
		Evidence: &claim.Evidence{
			Documents: []string{"Contract/Agreement"},
		},
	}
}

func findSection(plan *Plan, heading string) *Section {
	for i := range plan.Sections {
		if plan.Sections[i].Heading == heading {
			return &plan.Sections[i]
		}
	}
	return nil
}

func TestBuildPlanSectionOrder(t *testing.T) {
	plan := BuildPlan(sampleFormData(), "")
	var headings []string
	for _, section := range plan.Sections {
		headings = append(headings, section.Heading)
	}
	want := []string{
		"Claim Overview",
		"Plaintiff",
		"Defendant",
		"Statement of Claim (Schedule \"A\")",
		"Amount Claimed",
		"Remedy Sought",
		"Supporting Evidence",
	}
	if strings.Join(headings, "|") != strings.Join(want, "|") {
		t.Fatalf("section order mismatch:\n got %v\nwant %v", headings, want)
	}
}

func TestBuildPlanOmitsAbsentSections(t *testing.T) {
	data := sampleFormData()
	data.Remedy = nil
	plan := BuildPlan(data, "")

	if findSection(plan, "Remedy Sought") != nil {
		t.Fatal("remedy heading emitted for absent section")
	}
	amount := findSection(plan, "Amount Claimed")
	if amount == nil {
		t.Fatal("amount section dropped alongside absent remedy")
	}
	if len(amount.Lines) == 0 {
		t.Fatal("amount table empty despite populated section")
	}
}

func TestBuildPlanAmountRenderedVerbatim(t *testing.T) {
	plan := BuildPlan(sampleFormData(), "")
	overview := findSection(plan, "Claim Overview")
	found := false
	for _, line := range overview.Lines {
		if line.Label == "Total amount claimed" {
			found = true
			if line.Value != "$5500" {
				t.Fatalf("amount not rendered literally: %q", line.Value)
			}
		}
	}
	if !found {
		t.Fatal("total amount line missing")
	}
}

func TestBuildPlanStatementBodyFallbackChain(t *testing.T) {
	data := sampleFormData()

	plan := BuildPlan(data, "Initial description wins.")
	statement := findSection(plan, "Statement of Claim (Schedule \"A\")")
	if statement.Paragraphs[0] != "Initial description wins." {
		t.Fatalf("initial description not preferred: %q", statement.Paragraphs[0])
	}

	plan = BuildPlan(data, "")
	statement = findSection(plan, "Statement of Claim (Schedule \"A\")")
	if statement.Paragraphs[0] != data.ClaimDetails.Description {
		t.Fatalf("claim details description not used: %q", statement.Paragraphs[0])
	}

	data.ClaimDetails = nil
	plan = BuildPlan(data, "")
	statement = findSection(plan, "Statement of Claim (Schedule \"A\")")
	if statement.Paragraphs[0] != statementPlaceholder {
		t.Fatalf("placeholder not used: %q", statement.Paragraphs[0])
	}
}

func TestBuildPlanEmptySectionStructProducesNoHeading(t *testing.T) {
	plan := BuildPlan(&claim.FormData{Remedy: &claim.Remedy{}}, "")
	if findSection(plan, "Remedy Sought") != nil {
		t.Fatal("empty remedy struct produced a bare heading")
	}
}

func TestBuildPlanBooleanLines(t *testing.T) {
	data := sampleFormData()
	data.Eligibility.IsBasedInOntario = boolPtr(false)
	plan := BuildPlan(data, "")
	overview := findSection(plan, "Claim Overview")
	for _, line := range overview.Lines {
		if line.Label == "Ontario jurisdiction" && line.Value != "No" {
			t.Fatalf("explicit false rendered as %q", line.Value)
		}
	}
}
