package ports

import "context"

// SendDocsJob is the unit of work handed to the docs dispatcher.
type SendDocsJob struct {
	LeadID      int64
	RequestedBy string
}

// DocsService processes queued document-send jobs against the partner API.
type DocsService interface {
	Process(ctx context.Context, job SendDocsJob) error
}

// PartnerAddress is a street address in the partner's wire format.
type PartnerAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// PartnerFacilityAddress extends the plain address with the NPI and fax
// fields the partner expects inside facilityAddress.
type PartnerFacilityAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
	NPI    string `json:"npi"`
	Fax    string `json:"fax"`
}

// PartnerPhysician carries the physician block of the partner payload.
type PartnerPhysician struct {
	FirstName   string `json:"physicianFirstName"`
	LastName    string `json:"physicianLastName"`
	Specialty   string `json:"specialty"`
	NPI         string `json:"npi"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	ContactName string `json:"contactName"`
	Fax         string `json:"fax"`
	Phone       string `json:"phone"`
}

// PartnerPayload is the projection of a lead sent to the external
// document-sending partner. Field names follow the partner's contract
// verbatim, including the NPI duplicated inside facilityAddress.
type PartnerPayload struct {
	Email                string                 `json:"email"`
	BAASigned            bool                   `json:"baaSigned"`
	PASigned             bool                   `json:"paSigned"`
	FacilityName         string                 `json:"facilityName"`
	SelectedFacility     string                 `json:"selectedFacility"`
	FacilityAddress      PartnerFacilityAddress `json:"facilityAddress"`
	FacilityNPI          string                 `json:"facilityNPI"`
	FacilityTIN          string                 `json:"facilityTIN"`
	FacilityPTAN         string                 `json:"facilityPTAN"`
	ShippingContact      string                 `json:"shippingContact"`
	PrimaryContactName   string                 `json:"primaryContactName"`
	PrimaryContactEmail  string                 `json:"primaryContactEmail"`
	PrimaryContactPhone  string                 `json:"primaryContactPhone"`
	ShippingAddresses    []PartnerAddress       `json:"shippingAddresses"`
	SalesRepresentative  string                 `json:"salesRepresentative"`
	PhysicianInfo        PartnerPhysician       `json:"physicianInfo"`
	AdditionalPhysicians []PartnerPhysician     `json:"additionalPhysicians"`
}
