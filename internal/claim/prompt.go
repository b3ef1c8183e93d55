// File path: internal/claim/prompt.go
package claim

import "strings"

// canonicalFields enumerates every key the extraction model is asked to
// produce, with the meaning spelled out in the system prompt. The normalizer
// maps these keys into the nested form schema.
var canonicalFields = []struct {
	Key     string
	Meaning string
}{
	{"totalAmount", "total dollar amount being claimed, digits only"},
	{"isAmountUnder35000", "true if the total claim is $35,000 or less"},
	{"isBasedInOntario", "true if the events happened in Ontario or the defendant lives or does business there"},
	{"issueDate", "date the problem occurred, ISO 8601 if possible"},
	{"claimType", "one of: money owed, damages, return of property, other"},
	{"plaintiffName", "full legal name of the person making the claim"},
	{"plaintiffIsBusiness", "true if the plaintiff is a business"},
	{"plaintiffBusinessName", "plaintiff's business name, if any"},
	{"plaintiffAddress", "plaintiff's street address"},
	{"plaintiffCity", "plaintiff's city"},
	{"plaintiffProvince", "plaintiff's province"},
	{"plaintiffPostalCode", "plaintiff's postal code"},
	{"plaintiffPhone", "plaintiff's phone number"},
	{"plaintiffEmail", "plaintiff's email address"},
	{"defendantName", "full legal name of the person or business being claimed against"},
	{"defendantIsBusiness", "true if the defendant is a business"},
	{"defendantBusinessName", "defendant's business name, if any"},
	{"defendantAddress", "defendant's street address"},
	{"defendantCity", "defendant's city"},
	{"defendantProvince", "defendant's province"},
	{"defendantPostalCode", "defendant's postal code"},
	{"description", "short plain-language summary of what happened"},
	{"incidentDate", "date the dispute arose"},
	{"incidentLocation", "where the events took place"},
	{"agreementType", "kind of agreement involved: written contract, verbal agreement, invoice, none"},
	{"hasWrittenContract", "true if a written contract or agreement exists"},
	{"attemptedResolution", "true if the plaintiff already tried to resolve the dispute"},
	{"principalAmount", "principal amount owed before interest and costs, digits only"},
	{"claimingInterest", "true if the plaintiff wants interest on the amount owed"},
	{"interestRate", "annual interest rate claimed, if stated"},
	{"interestStartDate", "date interest should start accruing, if stated"},
	{"claimingCosts", "true if the plaintiff wants court filing costs"},
	{"seekingMoney", "true if the plaintiff wants a money judgment"},
	{"seekingReturnOfProperty", "true if the plaintiff wants property returned"},
	{"propertyDescription", "description of property to be returned, if any"},
	{"otherRemedy", "any other remedy sought"},
	{"documents", "array of supporting document types the plaintiff mentions"},
	{"hasWitnesses", "true if witnesses are mentioned"},
	{"witnessDetails", "who the witnesses are and what they saw"},
}

// extractionSystemPrompt builds the fixed system prompt sent with every
// extraction request.
func extractionSystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are an intake assistant for Ontario Small Claims Court plaintiff's claims. ")
	b.WriteString("Read the claim description and extract structured fields from it.\n\n")
	b.WriteString("Respond with a single JSON object of this shape and nothing else:\n")
	b.WriteString(`{"extracted": {...}, "missing": [...], "ambiguous": [{"field": "...", "reason": "...", "question": "..."}]}`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- \"extracted\" holds only fields you are confident about, using the keys listed below.\n")
	b.WriteString("- Omit a key entirely rather than guessing; list it in \"missing\" instead.\n")
	b.WriteString("- If the description is contradictory or unclear about a field, add an \"ambiguous\" entry with a clarifying question.\n")
	b.WriteString("- Dollar amounts are strings of digits without currency symbols.\n")
	b.WriteString("- Booleans must be JSON true/false, never strings.\n")
	b.WriteString("\nFields:\n")
	for _, field := range canonicalFields {
		b.WriteString("- ")
		b.WriteString(field.Key)
		b.WriteString(": ")
		b.WriteString(field.Meaning)
		b.WriteString("\n")
	}
	return b.String()
}
