// File path: internal/claim/questions.go
package claim

// Question describes one intake field as presented to the caller.
type Question struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
}

// Input types understood by the intake UI.
const (
	TypeText        = "text"
	TypeTextarea    = "textarea"
	TypeCurrency    = "currency"
	TypeDate        = "date"
	TypeBoolean     = "boolean"
	TypeSelect      = "select"
	TypeMultiSelect = "multiselect"
)

// Questions is the intake field table. Declaration order is the ask order
// and mirrors the layout of Form 7A: eligibility, plaintiff, defendant,
// claim details, amount, remedy, evidence. The selector depends on this
// ordering being explicit rather than derived.
var Questions = []Question{
	{ID: "eligibility.totalAmount", Type: TypeCurrency, Label: "What is the total amount you are claiming?", Description: "Small Claims Court handles claims up to $35,000.", Required: true},
	{ID: "eligibility.isAmountUnder35000", Type: TypeBoolean, Label: "Is the total amount $35,000 or less?", Required: true},
	{ID: "eligibility.isBasedInOntario", Type: TypeBoolean, Label: "Did the events happen in Ontario, or does the defendant live or carry on business in Ontario?", Required: true},
	{ID: "eligibility.issueDate", Type: TypeDate, Label: "When did the issue occur?", Required: true},
	{ID: "eligibility.claimType", Type: TypeSelect, Label: "What kind of claim is this?", Required: true, Options: []string{"money owed", "damages", "return of property", "other"}},

	{ID: "plaintiff.fullName", Type: TypeText, Label: "What is your full legal name?", Required: true},
	{ID: "plaintiff.isBusiness", Type: TypeBoolean, Label: "Are you making this claim on behalf of a business?", Required: true},
	{ID: "plaintiff.businessName", Type: TypeText, Label: "What is the business name?", Required: false},
	{ID: "plaintiff.address", Type: TypeText, Label: "What is your street address?", Required: true},
	{ID: "plaintiff.city", Type: TypeText, Label: "What city do you live in?", Required: true},
	{ID: "plaintiff.province", Type: TypeText, Label: "What province do you live in?", Required: true},
	{ID: "plaintiff.postalCode", Type: TypeText, Label: "What is your postal code?", Required: true},
	{ID: "plaintiff.phone", Type: TypeText, Label: "What is your phone number?", Required: true},
	{ID: "plaintiff.email", Type: TypeText, Label: "What is your email address?", Required: true},

	{ID: "defendants.fullName", Type: TypeText, Label: "What is the defendant's full legal name?", Description: "The person or business you are claiming against.", Required: true},
	{ID: "defendants.isBusiness", Type: TypeBoolean, Label: "Is the defendant a business?", Required: true},
	{ID: "defendants.businessName", Type: TypeText, Label: "What is the defendant's business name?", Required: false},
	{ID: "defendants.address", Type: TypeText, Label: "What is the defendant's street address?", Required: true},
	{ID: "defendants.city", Type: TypeText, Label: "What city is the defendant in?", Required: true},
	{ID: "defendants.province", Type: TypeText, Label: "What province is the defendant in?", Required: true},
	{ID: "defendants.postalCode", Type: TypeText, Label: "What is the defendant's postal code?", Required: true},

	{ID: "claimDetails.description", Type: TypeTextarea, Label: "Describe what happened in your own words.", Required: true},
	{ID: "claimDetails.incidentDate", Type: TypeDate, Label: "On what date did the dispute arise?", Required: true},
	{ID: "claimDetails.incidentLocation", Type: TypeText, Label: "Where did the events take place?", Required: true},
	{ID: "claimDetails.agreementType", Type: TypeSelect, Label: "What kind of agreement was involved, if any?", Required: false, Options: []string{"written contract", "verbal agreement", "invoice", "none"}},
	{ID: "claimDetails.hasWrittenContract", Type: TypeBoolean, Label: "Is there a written contract or agreement?", Required: true},
	{ID: "claimDetails.attemptedResolution", Type: TypeBoolean, Label: "Have you tried to resolve this with the defendant before filing?", Required: true},

	{ID: "amount.principalAmount", Type: TypeCurrency, Label: "What is the principal amount owed to you?", Required: true},
	{ID: "amount.claimingInterest", Type: TypeBoolean, Label: "Are you claiming interest on the amount owed?", Required: true},
	{ID: "amount.interestRate", Type: TypeText, Label: "What annual interest rate are you claiming?", Required: false},
	{ID: "amount.interestStartDate", Type: TypeDate, Label: "From what date should interest be calculated?", Required: false},
	{ID: "amount.claimingCosts", Type: TypeBoolean, Label: "Are you also claiming court filing costs?", Required: true},

	{ID: "remedy.seekingMoney", Type: TypeBoolean, Label: "Are you asking the court to order a money payment?", Required: true},
	{ID: "remedy.seekingReturnOfProperty", Type: TypeBoolean, Label: "Are you asking for the return of property?", Required: true},
	{ID: "remedy.propertyDescription", Type: TypeText, Label: "Describe the property to be returned.", Required: false},
	{ID: "remedy.otherRemedy", Type: TypeText, Label: "Is there any other remedy you are seeking?", Required: false},

	{ID: "evidence.documents", Type: TypeMultiSelect, Label: "What documents do you have to support your claim?", Required: true, Options: []string{"Contract/Agreement", "Invoice/Receipt", "Correspondence", "Photographs", "Estimates", "Other"}},
	{ID: "evidence.hasWitnesses", Type: TypeBoolean, Label: "Do you have witnesses who can support your claim?", Required: true},
}

// NextQuestionResult pairs the selected question with the completion flag.
type NextQuestionResult struct {
	Question  *Question `json:"question"`
	Completed bool      `json:"completed"`
}

// NextQuestion walks the field table in declaration order and returns the
// first required field that is neither answered nor holding a usable value.
// It is a pure function of its inputs; identical inputs always yield the
// identical question.
func NextQuestion(data *FormData, answered []string) NextQuestionResult {
	answeredSet := make(map[string]struct{}, len(answered))
	for _, id := range answered {
		answeredSet[id] = struct{}{}
	}
	for i := range Questions {
		q := Questions[i]
		if _, ok := answeredSet[q.ID]; ok {
			continue
		}
		if !q.Required {
			continue
		}
		if v, known := data.Value(q.ID); known && HasValue(v) {
			continue
		}
		selected := q
		return NextQuestionResult{Question: &selected, Completed: false}
	}
	return NextQuestionResult{Question: nil, Completed: true}
}

// QuestionPaths returns every field path in the table, in ask order. The
// analyzer reports this set as "missing" when extraction is unavailable.
func QuestionPaths() []string {
	paths := make([]string, 0, len(Questions))
	for _, q := range Questions {
		paths = append(paths, q.ID)
	}
	return paths
}

// questionByID is used when converting ambiguous-field reports back into
// askable questions.
func questionByID(id string) *Question {
	for i := range Questions {
		if Questions[i].ID == id {
			q := Questions[i]
			return &q
		}
	}
	return nil
}
