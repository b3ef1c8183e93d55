// File path: internal/claim/schema.go
package claim

import "strings"

// FormData is the canonical nested claim record built up over a generation
// session. Every field is optional until the question flow completes; the
// record lives only in the caller's payload and is never persisted.
type FormData struct {
	Eligibility  *Eligibility  `json:"eligibility,omitempty"`
	Plaintiff    *Plaintiff    `json:"plaintiff,omitempty"`
	Defendant    *Defendant    `json:"defendants,omitempty"`
	ClaimDetails *ClaimDetails `json:"claimDetails,omitempty"`
	Amount       *Amount       `json:"amount,omitempty"`
	Remedy       *Remedy       `json:"remedy,omitempty"`
	Evidence     *Evidence     `json:"evidence,omitempty"`
}

// Eligibility gates whether the claim belongs in Small Claims Court at all.
// Amounts stay strings; they are rendered verbatim into the documents.
type Eligibility struct {
	TotalAmount        string `json:"totalAmount,omitempty"`
	IsAmountUnder35000 *bool  `json:"isAmountUnder35000,omitempty"`
	IsBasedInOntario   *bool  `json:"isBasedInOntario,omitempty"`
	IssueDate          string `json:"issueDate,omitempty"`
	ClaimType          string `json:"claimType,omitempty"`
}

type Plaintiff struct {
	FullName     string `json:"fullName,omitempty"`
	IsBusiness   *bool  `json:"isBusiness,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	Province     string `json:"province,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
}

type Defendant struct {
	FullName     string `json:"fullName,omitempty"`
	IsBusiness   *bool  `json:"isBusiness,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	Province     string `json:"province,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
}

type ClaimDetails struct {
	Description         string `json:"description,omitempty"`
	IncidentDate        string `json:"incidentDate,omitempty"`
	IncidentLocation    string `json:"incidentLocation,omitempty"`
	AgreementType       string `json:"agreementType,omitempty"`
	HasWrittenContract  *bool  `json:"hasWrittenContract,omitempty"`
	AttemptedResolution *bool  `json:"attemptedResolution,omitempty"`
	ResolutionDetails   string `json:"resolutionDetails,omitempty"`
}

type Amount struct {
	PrincipalAmount   string `json:"principalAmount,omitempty"`
	ClaimingInterest  *bool  `json:"claimingInterest,omitempty"`
	InterestRate      string `json:"interestRate,omitempty"`
	InterestStartDate string `json:"interestStartDate,omitempty"`
	ClaimingCosts     *bool  `json:"claimingCosts,omitempty"`
}

type Remedy struct {
	SeekingMoney            *bool  `json:"seekingMoney,omitempty"`
	SeekingReturnOfProperty *bool  `json:"seekingReturnOfProperty,omitempty"`
	PropertyDescription     string `json:"propertyDescription,omitempty"`
	OtherRemedy             string `json:"otherRemedy,omitempty"`
}

type Evidence struct {
	Documents      []string `json:"documents,omitempty"`
	HasWitnesses   *bool    `json:"hasWitnesses,omitempty"`
	WitnessDetails string   `json:"witnessDetails,omitempty"`
}

// HasValue is the shared answered-field predicate: non-nil, non-empty after
// trimming for strings, and booleans always count once explicitly set.
func HasValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case *bool:
		return val != nil
	case bool:
		return true
	case []string:
		return len(val) > 0
	default:
		return true
	}
}

// Value resolves a dotted field path ("plaintiff.email") against the form
// data. The second return is false for unknown paths.
func (d *FormData) Value(path string) (interface{}, bool) {
	if d == nil {
		return nil, true
	}
	accessor, ok := fieldAccessors[path]
	if !ok {
		return nil, false
	}
	return accessor(d), true
}

// fieldAccessors is the single place dotted paths are tied to struct fields.
// The selector, merge, and tests all resolve paths through it.
var fieldAccessors = map[string]func(*FormData) interface{}{
	"eligibility.totalAmount": func(d *FormData) interface{} {
		if d.Eligibility == nil {
			return nil
		}
		return d.Eligibility.TotalAmount
	},
	"eligibility.isAmountUnder35000": func(d *FormData) interface{} {
		if d.Eligibility == nil {
			return nil
		}
		return d.Eligibility.IsAmountUnder35000
	},
	"eligibility.isBasedInOntario": func(d *FormData) interface{} {
		if d.Eligibility == nil {
			return nil
		}
		return d.Eligibility.IsBasedInOntario
	},
	"eligibility.issueDate": func(d *FormData) interface{} {
		if d.Eligibility == nil {
			return nil
		}
		return d.Eligibility.IssueDate
	},
	"eligibility.claimType": func(d *FormData) interface{} {
		if d.Eligibility == nil {
			return nil
		}
		return d.Eligibility.ClaimType
	},
	"plaintiff.fullName": func(d *FormData) interface{} {
		if d.Plaintiff == nil {
			return nil
		}
		return d.Plaintiff.FullName
	},
	"plaintiff.isBusiness": func(d *FormData) interface{} {
		if d.Plaintiff == nil {
			return nil
		}
		return d.Plaintiff.IsBusiness
	},
	"plaintiff.businessName": func(d *FormData) interface{} {
		if d.Plaintiff == nil {
			return nil
		}
		return d.Plaintiff.BusinessName
	},
	"plaintiff.address": func(d *FormData) interface{} {
		if d.Plaintiff == nil {
			return nil
		}
		return d.Plaintiff.Address
	},
	"plaintiff.city": func(d *FormData) interface{} {
		if d.Plaintiff == nil {
			return nil
		}
		return d.Plaintiff.City
	},
	"plaintiff.province": func(d *FormData) interface{} {
		if d.Plaintiff == nil {
			return nil
		}
		return d.Plaintiff.Province
	},
	"plaintiff.postalCode": func(d *FormData) interface{} {
		if d.Plaintiff == nil {
			return nil
		}
		return d.Plaintiff.PostalCode
	},
	"plaintiff.phone": func(d *FormData) interface{} {
		if d.Plaintiff == nil {
			return nil
		}
		return d.Plaintiff.Phone
	},
	"plaintiff.email": func(d *FormData) interface{} {
		if d.Plaintiff == nil {
			return nil
		}
		return d.Plaintiff.Email
	},
	"defendants.fullName": func(d *FormData) interface{} {
		if d.Defendant == nil {
			return nil
		}
		return d.Defendant.FullName
	},
	"defendants.isBusiness": func(d *FormData) interface{} {
		if d.Defendant == nil {
			return nil
		}
		return d.Defendant.IsBusiness
	},
	"defendants.businessName": func(d *FormData) interface{} {
		if d.Defendant == nil {
			return nil
		}
		return d.Defendant.BusinessName
	},
	"defendants.address": func(d *FormData) interface{} {
		if d.Defendant == nil {
			return nil
		}
		return d.Defendant.Address
	},
	"defendants.city": func(d *FormData) interface{} {
		if d.Defendant == nil {
			return nil
		}
		return d.Defendant.City
	},
	"defendants.province": func(d *FormData) interface{} {
		if d.Defendant == nil {
			return nil
		}
		return d.Defendant.Province
	},
	"defendants.postalCode": func(d *FormData) interface{} {
		if d.Defendant == nil {
			return nil
		}
		return d.Defendant.PostalCode
	},
	"claimDetails.description": func(d *FormData) interface{} {
		if d.ClaimDetails == nil {
			return nil
		}
		return d.ClaimDetails.Description
	},
	"claimDetails.incidentDate": func(d *FormData) interface{} {
		if d.ClaimDetails == nil {
			return nil
		}
		return d.ClaimDetails.IncidentDate
	},
	"claimDetails.incidentLocation": func(d *FormData) interface{} {
		if d.ClaimDetails == nil {
			return nil
		}
		return d.ClaimDetails.IncidentLocation
	},
	"claimDetails.agreementType": func(d *FormData) interface{} {
		if d.ClaimDetails == nil {
			return nil
		}
		return d.ClaimDetails.AgreementType
	},
	"claimDetails.hasWrittenContract": func(d *FormData) interface{} {
		if d.ClaimDetails == nil {
			return nil
		}
		return d.ClaimDetails.HasWrittenContract
	},
	"claimDetails.attemptedResolution": func(d *FormData) interface{} {
		if d.ClaimDetails == nil {
			return nil
		}
		return d.ClaimDetails.AttemptedResolution
	},
	"claimDetails.resolutionDetails": func(d *FormData) interface{} {
		if d.ClaimDetails == nil {
			return nil
		}
		return d.ClaimDetails.ResolutionDetails
	},
	"amount.principalAmount": func(d *FormData) interface{} {
		if d.Amount == nil {
			return nil
		}
		return d.Amount.PrincipalAmount
	},
	"amount.claimingInterest": func(d *FormData) interface{} {
		if d.Amount == nil {
			return nil
		}
		return d.Amount.ClaimingInterest
	},
	"amount.interestRate": func(d *FormData) interface{} {
		if d.Amount == nil {
			return nil
		}
		return d.Amount.InterestRate
	},
	"amount.interestStartDate": func(d *FormData) interface{} {
		if d.Amount == nil {
			return nil
		}
		return d.Amount.InterestStartDate
	},
	"amount.claimingCosts": func(d *FormData) interface{} {
		if d.Amount == nil {
			return nil
		}
		return d.Amount.ClaimingCosts
	},
	"remedy.seekingMoney": func(d *FormData) interface{} {
		if d.Remedy == nil {
			return nil
		}
		return d.Remedy.SeekingMoney
	},
	"remedy.seekingReturnOfProperty": func(d *FormData) interface{} {
		if d.Remedy == nil {
			return nil
		}
		return d.Remedy.SeekingReturnOfProperty
	},
	"remedy.propertyDescription": func(d *FormData) interface{} {
		if d.Remedy == nil {
			return nil
		}
		return d.Remedy.PropertyDescription
	},
	"remedy.otherRemedy": func(d *FormData) interface{} {
		if d.Remedy == nil {
			return nil
		}
		return d.Remedy.OtherRemedy
	},
	"evidence.documents": func(d *FormData) interface{} {
		if d.Evidence == nil {
			return nil
		}
		return d.Evidence.Documents
	},
	"evidence.hasWitnesses": func(d *FormData) interface{} {
		if d.Evidence == nil {
			return nil
		}
		return d.Evidence.HasWitnesses
	},
	"evidence.witnessDetails": func(d *FormData) interface{} {
		if d.Evidence == nil {
			return nil
		}
		return d.Evidence.WitnessDetails
	},
}
