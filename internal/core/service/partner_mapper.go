package service

import (
	"fmt"
	"strings"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

const partnerFacilityType = "Physician Office (11)"

// BuildPartnerPayload projects a lead into the document-sending partner's wire
// format. This is the only export toward that boundary; transport belongs to
// the partner client.
func BuildPartnerPayload(lead *domain.Lead, salesRep string) *ports.PartnerPayload {
	first, last := splitOwnerName(lead.OwnerName)
	email := lead.Email
	if email == "" {
		email = derivedEmail(lead.PracticeName)
	}

	return &ports.PartnerPayload{
		Email:            email,
		BAASigned:        true,
		PASigned:         true,
		FacilityName:     lead.PracticeName,
		SelectedFacility: partnerFacilityType,
		FacilityAddress: ports.PartnerFacilityAddress{
			Street: lead.Address,
			City:   lead.City,
			State:  lead.State,
			Zip:    lead.ZipCode,
			NPI:    lead.NPI,
			Fax:    lead.PracticePhone,
		},
		FacilityNPI:         lead.NPI,
		FacilityTIN:         lead.EINTIN,
		FacilityPTAN:        lead.PTAN,
		ShippingContact:     lead.OwnerName,
		PrimaryContactName:  lead.OwnerName,
		PrimaryContactEmail: email,
		PrimaryContactPhone: lead.PracticePhone,
		ShippingAddresses: []ports.PartnerAddress{
			{
				Street: lead.Address,
				City:   lead.City,
				State:  lead.State,
				Zip:    lead.ZipCode,
			},
		},
		SalesRepresentative: salesRep,
		PhysicianInfo: ports.PartnerPhysician{
			FirstName:   first,
			LastName:    last,
			Specialty:   lead.Specialty,
			NPI:         lead.NPI,
			Street:      lead.Address,
			City:        lead.City,
			State:       lead.State,
			Zip:         lead.ZipCode,
			ContactName: lead.OwnerName,
			Fax:         lead.PracticePhone,
			Phone:       lead.PracticePhone,
		},
		AdditionalPhysicians: []ports.PartnerPhysician{},
	}
}

func splitOwnerName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// derivedEmail synthesises a contact address from the practice name when the
// lead record carries none.
func derivedEmail(practiceName string) string {
	lower := strings.ToLower(practiceName)
	local := strings.ReplaceAll(lower, " ", ".")
	domainPart := strings.ReplaceAll(lower, " ", "")
	return fmt.Sprintf("%s@%s.com", local, domainPart)
}
