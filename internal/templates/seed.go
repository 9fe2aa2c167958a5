package templates

import (
	"context"
	"fmt"

	"github.com/lexdraft/lexdraft/internal/template"
)

// builtinTemplates are seeded on first start. The lease body predates the
// current marker conventions and relies on the resolver's override table.
var builtinTemplates = []template.Template{
	{
		ID:           "lease-residential",
		Title:        "Residential Lease Agreement",
		TemplateType: "lease",
		Jurisdiction: "US",
		Builtin:      true,
		Content: `RESIDENTIAL LEASE AGREEMENT

This Lease Agreement is entered into between [LANDLORD] ("Landlord") and
[TENANT] ("Tenant") for the premises located at [PREMISES].

1. TERM. The lease term is [TERM], beginning on the date of execution.

2. RENT. Tenant shall pay rent of [RENT AMOUNT] per month, due on the
[DUE DAY] of each month.

3. SECURITY DEPOSIT. Tenant shall deposit [SECURITY DEPOSIT] with
Landlord as security for the performance of Tenant's obligations.

Landlord: [LANDLORD]          Tenant: [TENANT]
`,
		Fields: []template.Field{
			{Name: "landlordName", Label: "Landlord name", Kind: template.KindText, Required: true},
			{Name: "tenantName", Label: "Tenant name", Kind: template.KindText, Required: true},
			{Name: "propertyAddress", Label: "Property address", Kind: template.KindTextarea, Required: true},
			{Name: "leaseTerm", Label: "Lease term", Kind: template.KindText, Required: true},
			{Name: "rentAmount", Label: "Monthly rent", Kind: template.KindNumber, Required: true},
			{Name: "dueDay", Label: "Rent due day", Kind: template.KindText, Required: true},
			{Name: "securityDeposit", Label: "Security deposit", Kind: template.KindNumber, Required: false},
		},
	},
	{
		ID:           "nda-mutual",
		Title:        "Mutual Non-Disclosure Agreement",
		TemplateType: "nda",
		Jurisdiction: "US",
		Builtin:      true,
		Content: `MUTUAL NON-DISCLOSURE AGREEMENT

This Agreement is made effective as of {{effectiveDate}} between
{{partyOne}} and {{partyTwo}} (together, the "Parties").

1. CONFIDENTIAL INFORMATION. Each Party may disclose to the other certain
confidential and proprietary information in connection with the Purpose.

2. TERM. The obligations of this Agreement remain in effect for
{{termYears}} years from the effective date.

3. GOVERNING LAW. This Agreement is governed by the laws of
{{governingState}}.

{{partyOne}}                      {{partyTwo}}
`,
		Fields: []template.Field{
			{Name: "partyOne", Label: "First party", Kind: template.KindText, Required: true},
			{Name: "partyTwo", Label: "Second party", Kind: template.KindText, Required: true},
			{Name: "effectiveDate", Label: "Effective date", Kind: template.KindDate, Required: true},
			{Name: "termYears", Label: "Term in years", Kind: template.KindNumber, Required: true},
			{Name: "governingState", Label: "Governing state", Kind: template.KindText, Required: false},
		},
	},
	{
		ID:           "service-agreement",
		Title:        "Professional Services Agreement",
		TemplateType: "services",
		Jurisdiction: "US",
		Builtin:      true,
		Content: `PROFESSIONAL SERVICES AGREEMENT

This Agreement is between [SERVICE PROVIDER] ("Provider") and [CLIENT]
("Client").

1. SERVICES. Provider will perform the following services: {{scopeOfWork}}

2. COMPENSATION. Client shall pay Provider [FEE], payable as follows:
[PAYMENT SCHEDULE].

3. TERM. This Agreement begins on {{startDate}} and continues until the
services are complete or either party terminates with written notice.

Provider: [SERVICE PROVIDER]      Client: [CLIENT]
`,
		Fields: []template.Field{
			{Name: "providerName", Label: "Provider name", Kind: template.KindText, Required: true},
			{Name: "clientName", Label: "Client name", Kind: template.KindText, Required: true},
			{Name: "scopeOfWork", Label: "Scope of work", Kind: template.KindTextarea, Required: true},
			{Name: "feeAmount", Label: "Fee", Kind: template.KindNumber, Required: true},
			{Name: "paymentTerms", Label: "Payment schedule", Kind: template.KindSelect, Required: true, Options: []string{"on completion", "monthly", "50% upfront"}},
			{Name: "startDate", Label: "Start date", Kind: template.KindDate, Required: true},
		},
	},
}

// Seed inserts the builtin templates that are not already present.
// Returns the number of templates inserted.
func (s *Store) Seed(ctx context.Context) (int, error) {
	inserted := 0
	for _, t := range builtinTemplates {
		existing, err := s.GetByID(ctx, t.ID)
		if err != nil {
			return inserted, fmt.Errorf("checking builtin %s: %w", t.ID, err)
		}
		if existing != nil {
			continue
		}
		if _, err := s.Create(ctx, t); err != nil {
			return inserted, fmt.Errorf("seeding %s: %w", t.ID, err)
		}
		inserted++
	}
	return inserted, nil
}
