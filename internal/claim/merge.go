// File path: internal/claim/merge.go
package claim

// Merge overlays src onto dst, field by field. A src field is applied only
// when it holds a usable value, so merging never clears an existing answer;
// later patches (user answers, manual edits) replace earlier ones. Sections
// missing from dst are allocated on demand.
func Merge(dst, src *FormData) *FormData {
	if dst == nil {
		dst = &FormData{}
	}
	if src == nil {
		return dst
	}
	if src.Eligibility != nil {
		if dst.Eligibility == nil {
			dst.Eligibility = &Eligibility{}
		}
		mergeString(&dst.Eligibility.TotalAmount, src.Eligibility.TotalAmount)
		mergeBool(&dst.Eligibility.IsAmountUnder35000, src.Eligibility.IsAmountUnder35000)
		mergeBool(&dst.Eligibility.IsBasedInOntario, src.Eligibility.IsBasedInOntario)
		mergeString(&dst.Eligibility.IssueDate, src.Eligibility.IssueDate)
		mergeString(&dst.Eligibility.ClaimType, src.Eligibility.ClaimType)
	}
	if src.Plaintiff != nil {
		if dst.Plaintiff == nil {
			dst.Plaintiff = &Plaintiff{}
		}
		mergeString(&dst.Plaintiff.FullName, src.Plaintiff.FullName)
		mergeBool(&dst.Plaintiff.IsBusiness, src.Plaintiff.IsBusiness)
		mergeString(&dst.Plaintiff.BusinessName, src.Plaintiff.BusinessName)
		mergeString(&dst.Plaintiff.Address, src.Plaintiff.Address)
		mergeString(&dst.Plaintiff.City, src.Plaintiff.City)
		mergeString(&dst.Plaintiff.Province, src.Plaintiff.Province)
		mergeString(&dst.Plaintiff.PostalCode, src.Plaintiff.PostalCode)
		mergeString(&dst.Plaintiff.Phone, src.Plaintiff.Phone)
		mergeString(&dst.Plaintiff.Email, src.Plaintiff.Email)
	}
	if src.Defendant != nil {
		if dst.Defendant == nil {
			dst.Defendant = &Defendant{}
		}
		mergeString(&dst.Defendant.FullName, src.Defendant.FullName)
		mergeBool(&dst.Defendant.IsBusiness, src.Defendant.IsBusiness)
		mergeString(&dst.Defendant.BusinessName, src.Defendant.BusinessName)
		mergeString(&dst.Defendant.Address, src.Defendant.Address)
		mergeString(&dst.Defendant.City, src.Defendant.City)
		mergeString(&dst.Defendant.Province, src.Defendant.Province)
		mergeString(&dst.Defendant.PostalCode, src.Defendant.PostalCode)
	}
	if src.ClaimDetails != nil {
		if dst.ClaimDetails == nil {
			dst.ClaimDetails = &ClaimDetails{}
		}
		mergeString(&dst.ClaimDetails.Description, src.ClaimDetails.Description)
		mergeString(&dst.ClaimDetails.IncidentDate, src.ClaimDetails.IncidentDate)
		mergeString(&dst.ClaimDetails.IncidentLocation, src.ClaimDetails.IncidentLocation)
		mergeString(&dst.ClaimDetails.AgreementType, src.ClaimDetails.AgreementType)
		mergeBool(&dst.ClaimDetails.HasWrittenContract, src.ClaimDetails.HasWrittenContract)
		mergeBool(&dst.ClaimDetails.AttemptedResolution, src.ClaimDetails.AttemptedResolution)
		mergeString(&dst.ClaimDetails.ResolutionDetails, src.ClaimDetails.ResolutionDetails)
	}
	if src.Amount != nil {
		if dst.Amount == nil {
			dst.Amount = &Amount{}
		}
		mergeString(&dst.Amount.PrincipalAmount, src.Amount.PrincipalAmount)
		mergeBool(&dst.Amount.ClaimingInterest, src.Amount.ClaimingInterest)
		mergeString(&dst.Amount.InterestRate, src.Amount.InterestRate)
		mergeString(&dst.Amount.InterestStartDate, src.Amount.InterestStartDate)
		mergeBool(&dst.Amount.ClaimingCosts, src.Amount.ClaimingCosts)
	}
	if src.Remedy != nil {
		if dst.Remedy == nil {
			dst.Remedy = &Remedy{}
		}
		mergeBool(&dst.Remedy.SeekingMoney, src.Remedy.SeekingMoney)
		mergeBool(&dst.Remedy.SeekingReturnOfProperty, src.Remedy.SeekingReturnOfProperty)
		mergeString(&dst.Remedy.PropertyDescription, src.Remedy.PropertyDescription)
		mergeString(&dst.Remedy.OtherRemedy, src.Remedy.OtherRemedy)
	}
	if src.Evidence != nil {
		if dst.Evidence == nil {
			dst.Evidence = &Evidence{}
		}
		for _, doc := range src.Evidence.Documents {
			dst.Evidence.Documents = appendUnique(dst.Evidence.Documents, doc)
		}
		mergeBool(&dst.Evidence.HasWitnesses, src.Evidence.HasWitnesses)
		mergeString(&dst.Evidence.WitnessDetails, src.Evidence.WitnessDetails)
	}
	return dst
}

func mergeString(dst *string, src string) {
	if HasValue(src) {
		*dst = src
	}
}

func mergeBool(dst **bool, src *bool) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func appendUnique(docs []string, doc string) []string {
	if !HasValue(doc) {
		return docs
	}
	for _, existing := range docs {
		if existing == doc {
			return docs
		}
	}
	return append(docs, doc)
}
