// File path: internal/claim/normalize.go
package claim

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const smallClaimsLimit = 35000

// flattenPayload canonicalizes the two response shapes the extraction model
// produces: either a flat field map, or fields grouped under section-like
// keys ("ELIGIBILITY": {...}). Grouped entries are folded into one flat
// namespace. Collision precedence is explicit so the outcome never depends
// on map iteration order: top-level scalars win over grouped entries, and
// groups are folded in sorted key order.
func flattenPayload(raw map[string]interface{}) map[string]interface{} {
	flat := make(map[string]interface{}, len(raw))
	groupKeys := make([]string, 0, len(raw))
	for key, value := range raw {
		if _, ok := value.(map[string]interface{}); ok {
			groupKeys = append(groupKeys, key)
			continue
		}
		flat[key] = value
	}
	sort.Strings(groupKeys)
	for _, key := range groupKeys {
		group := raw[key].(map[string]interface{})
		childKeys := make([]string, 0, len(group))
		for childKey := range group {
			childKeys = append(childKeys, childKey)
		}
		sort.Strings(childKeys)
		for _, childKey := range childKeys {
			if _, exists := flat[childKey]; !exists {
				flat[childKey] = group[childKey]
			}
		}
	}
	return flat
}

// mapFields converts the canonical flat key set into the nested form schema.
// Keys are matched case-insensitively. totalAmount doubles as the principal
// amount fallback, and isAmountUnder35000 is computed from totalAmount when
// the model did not supply it.
func mapFields(flat map[string]interface{}) *FormData {
	lookup := newFlatLookup(flat)
	data := &FormData{}

	if totalAmount, ok := lookup.str("totalAmount", "claimAmount"); ok {
		eligibility(data).TotalAmount = totalAmount
	}
	if under, ok := lookup.boolean("isAmountUnder35000", "amountUnder35000"); ok {
		eligibility(data).IsAmountUnder35000 = &under
	} else if total, ok := lookup.str("totalAmount", "claimAmount"); ok {
		if parsed, err := parseAmount(total); err == nil {
			under := parsed <= smallClaimsLimit
			eligibility(data).IsAmountUnder35000 = &under
		}
	}
	if ontario, ok := lookup.boolean("isBasedInOntario", "basedInOntario", "inOntario"); ok {
		eligibility(data).IsBasedInOntario = &ontario
	}
	if issueDate, ok := lookup.str("issueDate", "dateOfIssue"); ok {
		eligibility(data).IssueDate = issueDate
	}
	if claimType, ok := lookup.str("claimType", "typeOfClaim"); ok {
		eligibility(data).ClaimType = strings.ToLower(claimType)
	}

	if name, ok := lookup.str("plaintiffName", "plaintiffFullName"); ok {
		plaintiff(data).FullName = name
	}
	if isBusiness, ok := lookup.boolean("plaintiffIsBusiness"); ok {
		plaintiff(data).IsBusiness = &isBusiness
	}
	if businessName, ok := lookup.str("plaintiffBusinessName"); ok {
		plaintiff(data).BusinessName = businessName
	}
	if address, ok := lookup.str("plaintiffAddress"); ok {
		plaintiff(data).Address = address
	}
	if city, ok := lookup.str("plaintiffCity"); ok {
		plaintiff(data).City = city
	}
	if province, ok := lookup.str("plaintiffProvince"); ok {
		plaintiff(data).Province = province
	}
	if postal, ok := lookup.str("plaintiffPostalCode"); ok {
		plaintiff(data).PostalCode = postal
	}
	if phone, ok := lookup.str("plaintiffPhone"); ok {
		plaintiff(data).Phone = phone
	}
	if email, ok := lookup.str("plaintiffEmail"); ok {
		plaintiff(data).Email = email
	}

	if name, ok := lookup.str("defendantName", "defendantFullName"); ok {
		defendant(data).FullName = name
	}
	if isBusiness, ok := lookup.boolean("defendantIsBusiness"); ok {
		defendant(data).IsBusiness = &isBusiness
	}
	if businessName, ok := lookup.str("defendantBusinessName"); ok {
		defendant(data).BusinessName = businessName
	}
	if address, ok := lookup.str("defendantAddress"); ok {
		defendant(data).Address = address
	}
	if city, ok := lookup.str("defendantCity"); ok {
		defendant(data).City = city
	}
	if province, ok := lookup.str("defendantProvince"); ok {
		defendant(data).Province = province
	}
	if postal, ok := lookup.str("defendantPostalCode"); ok {
		defendant(data).PostalCode = postal
	}

	if description, ok := lookup.str("description", "claimDescription", "summary"); ok {
		claimDetails(data).Description = description
	}
	if incidentDate, ok := lookup.str("incidentDate"); ok {
		claimDetails(data).IncidentDate = incidentDate
	}
	if location, ok := lookup.str("incidentLocation", "location"); ok {
		claimDetails(data).IncidentLocation = location
	}
	if agreementType, ok := lookup.str("agreementType"); ok {
		claimDetails(data).AgreementType = agreementType
	}
	if written, ok := lookup.boolean("hasWrittenContract", "writtenContract"); ok {
		claimDetails(data).HasWrittenContract = &written
	}
	if attempted, ok := lookup.boolean("attemptedResolution", "triedToResolve"); ok {
		claimDetails(data).AttemptedResolution = &attempted
	}
	if details, ok := lookup.str("resolutionDetails"); ok {
		claimDetails(data).ResolutionDetails = details
	}

	if principal, ok := lookup.str("principalAmount"); ok {
		amount(data).PrincipalAmount = principal
	} else if total, ok := lookup.str("totalAmount", "claimAmount"); ok {
		amount(data).PrincipalAmount = total
	}
	if interest, ok := lookup.boolean("claimingInterest"); ok {
		amount(data).ClaimingInterest = &interest
	}
	if interestRate, ok := lookup.str("interestRate"); ok {
		amount(data).InterestRate = interestRate
	}
	if startDate, ok := lookup.str("interestStartDate"); ok {
		amount(data).InterestStartDate = startDate
	}
	if costs, ok := lookup.boolean("claimingCosts"); ok {
		amount(data).ClaimingCosts = &costs
	}

	if money, ok := lookup.boolean("seekingMoney"); ok {
		remedy(data).SeekingMoney = &money
	}
	if property, ok := lookup.boolean("seekingReturnOfProperty", "seekingProperty"); ok {
		remedy(data).SeekingReturnOfProperty = &property
	}
	if propertyDesc, ok := lookup.str("propertyDescription"); ok {
		remedy(data).PropertyDescription = propertyDesc
	}
	if other, ok := lookup.str("otherRemedy"); ok {
		remedy(data).OtherRemedy = other
	}

	if docs, ok := lookup.strSlice("documents", "evidenceDocuments"); ok {
		for _, doc := range docs {
			evidence(data).Documents = appendUnique(evidence(data).Documents, doc)
		}
	}
	if witnesses, ok := lookup.boolean("hasWitnesses"); ok {
		evidence(data).HasWitnesses = &witnesses
	}
	if witnessDetails, ok := lookup.str("witnessDetails"); ok {
		evidence(data).WitnessDetails = witnessDetails
	}

	return data
}

// applyHeuristics runs the keyword-presence fallbacks against the original
// description. Each rule fires only when the target field is still unset, so
// an explicit model value is never overridden. The returned paths identify
// every field the pass populated; callers surface them so inferred values
// can be distinguished from confirmed ones.
func applyHeuristics(data *FormData, description string) []string {
	lower := strings.ToLower(description)
	var inferred []string

	// Several document rules share the evidence.documents path.
	mark := func(path string) {
		inferred = appendUnique(inferred, path)
	}

	if strings.Contains(lower, "interest") {
		if data.Amount == nil || data.Amount.ClaimingInterest == nil {
			v := true
			amount(data).ClaimingInterest = &v
			mark("amount.claimingInterest")
		}
	}
	if strings.Contains(lower, "contract") || strings.Contains(lower, "agreement") {
		if !containsDoc(data, "Contract/Agreement") {
			evidence(data).Documents = appendUnique(evidence(data).Documents, "Contract/Agreement")
			mark("evidence.documents")
		}
	}
	if strings.Contains(lower, "invoice") || strings.Contains(lower, "receipt") {
		if !containsDoc(data, "Invoice/Receipt") {
			evidence(data).Documents = appendUnique(evidence(data).Documents, "Invoice/Receipt")
			mark("evidence.documents")
		}
	}
	if strings.Contains(lower, "email") || strings.Contains(lower, "text message") || strings.Contains(lower, "letter") {
		if !containsDoc(data, "Correspondence") {
			evidence(data).Documents = appendUnique(evidence(data).Documents, "Correspondence")
			mark("evidence.documents")
		}
	}
	if strings.Contains(lower, "photo") || strings.Contains(lower, "picture") {
		if !containsDoc(data, "Photographs") {
			evidence(data).Documents = appendUnique(evidence(data).Documents, "Photographs")
			mark("evidence.documents")
		}
	}
	if strings.Contains(lower, "witness") {
		if data.Evidence == nil || data.Evidence.HasWitnesses == nil {
			v := true
			evidence(data).HasWitnesses = &v
			mark("evidence.hasWitnesses")
		}
	}
	if data.Eligibility == nil || !HasValue(data.Eligibility.ClaimType) {
		switch {
		case strings.Contains(lower, "damage"):
			eligibility(data).ClaimType = "damages"
			mark("eligibility.claimType")
		case strings.Contains(lower, "owe") || strings.Contains(lower, "unpaid") || strings.Contains(lower, "not paid"):
			eligibility(data).ClaimType = "money owed"
			mark("eligibility.claimType")
		}
	}
	return inferred
}

func containsDoc(data *FormData, doc string) bool {
	if data.Evidence == nil {
		return false
	}
	for _, existing := range data.Evidence.Documents {
		if existing == doc {
			return true
		}
	}
	return false
}

// Section allocators used by the mapping and heuristic passes.

func eligibility(d *FormData) *Eligibility {
	if d.Eligibility == nil {
		d.Eligibility = &Eligibility{}
	}
	return d.Eligibility
}

func plaintiff(d *FormData) *Plaintiff {
	if d.Plaintiff == nil {
		d.Plaintiff = &Plaintiff{}
	}
	return d.Plaintiff
}

func defendant(d *FormData) *Defendant {
	if d.Defendant == nil {
		d.Defendant = &Defendant{}
	}
	return d.Defendant
}

func claimDetails(d *FormData) *ClaimDetails {
	if d.ClaimDetails == nil {
		d.ClaimDetails = &ClaimDetails{}
	}
	return d.ClaimDetails
}

func amount(d *FormData) *Amount {
	if d.Amount == nil {
		d.Amount = &Amount{}
	}
	return d.Amount
}

func remedy(d *FormData) *Remedy {
	if d.Remedy == nil {
		d.Remedy = &Remedy{}
	}
	return d.Remedy
}

func evidence(d *FormData) *Evidence {
	if d.Evidence == nil {
		d.Evidence = &Evidence{}
	}
	return d.Evidence
}

// flatLookup resolves canonical keys against the flattened payload and
// coerces JSON scalar variants. Keys match case-insensitively and ignore
// underscores, so snake_case model output still lands.
type flatLookup struct {
	values map[string]interface{}
}

func lookupKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "")
}

func newFlatLookup(flat map[string]interface{}) flatLookup {
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	values := make(map[string]interface{}, len(flat))
	for _, key := range keys {
		normalized := lookupKey(key)
		if _, exists := values[normalized]; exists {
			continue
		}
		values[normalized] = flat[key]
	}
	return flatLookup{values: values}
}

func (l flatLookup) raw(keys ...string) (interface{}, bool) {
	for _, key := range keys {
		if v, ok := l.values[lookupKey(key)]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (l flatLookup) str(keys ...string) (string, bool) {
	v, ok := l.raw(keys...)
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case string:
		trimmed := strings.TrimSpace(val)
		return trimmed, trimmed != ""
	case float64:
		return formatNumber(val), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

func (l flatLookup) boolean(keys ...string) (bool, bool) {
	v, ok := l.raw(keys...)
	if !ok {
		return false, false
	}
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes":
			return true, true
		case "false", "no":
			return false, true
		}
	}
	return false, false
}

func (l flatLookup) strSlice(keys ...string) ([]string, bool) {
	v, ok := l.raw(keys...)
	if !ok {
		return nil, false
	}
	switch val := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out, len(out) > 0
	case string:
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out, len(out) > 0
	}
	return nil, false
}

// parseAmount tolerates currency adornments ("$12,500.00") in model output.
func parseAmount(value string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(value))
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	return strconv.ParseFloat(cleaned, 64)
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
