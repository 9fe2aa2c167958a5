package template

// overrides maps a template ID to a hard-coded field-name -> bracket-marker
// table. A handful of legacy templates were authored before the variant
// conventions settled and use markers the generic passes cannot derive
// from the field names; they are pinned here rather than rewritten, since
// customers have saved copies of the original wording.
var overrides = map[string]map[string]string{
	"lease-residential": {
		"rentAmount":      "RENT AMOUNT",
		"dueDay":          "DUE DAY",
		"securityDeposit": "SECURITY DEPOSIT",
		"landlordName":    "LANDLORD",
		"tenantName":      "TENANT",
		"propertyAddress": "PREMISES",
		"leaseTerm":       "TERM",
	},
	"nda-mutual": {
		"partyOne":      "FIRST PARTY",
		"partyTwo":      "SECOND PARTY",
		"effectiveDate": "EFFECTIVE DATE",
		"termYears":     "TERM IN YEARS",
	},
	"service-agreement": {
		"providerName": "SERVICE PROVIDER",
		"clientName":   "CLIENT",
		"feeAmount":    "FEE",
		"paymentTerms": "PAYMENT SCHEDULE",
	},
}

// Overrides returns the override marker table for the given template ID,
// or nil when the template follows the generic conventions.
func Overrides(templateID string) map[string]string {
	return overrides[templateID]
}
