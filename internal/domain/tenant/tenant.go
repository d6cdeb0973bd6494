// Package tenant defines the tenant (partner) model exchanged with the remote tenant API.
package tenant

// Tenant is one partner organization as returned by the tenant API.
type Tenant struct {
	ID                   string      `json:"id"`
	CompanyName          string      `json:"companyName"`
	CompanyNameShortForm string      `json:"companyNameShortForm"`
	AdminEmail           string      `json:"adminEmail"`
	FirstName            string      `json:"firstName,omitempty"`
	LastName             string      `json:"lastName,omitempty"`
	PhoneNumber          string      `json:"phoneNumber"`
	Country              string      `json:"country"`
	ConnectionString     string      `json:"connectionString,omitempty"`
	Details              *Details    `json:"detailsDto"`
	IsActive             bool        `json:"isActive"`
	Issuer               string      `json:"issuer,omitempty"`
	Modules              []Module    `json:"modules"`
	Name                 string      `json:"name,omitempty"`
	ValidUpto            string      `json:"validUpto"`
	Directors            []Director  `json:"directors,omitempty"`
	UBOs                 []Ownership `json:"ubOs,omitempty"`
}

// Details is the nested company profile of a tenant. Every field is optional.
type Details struct {
	AccountingMethod      string `json:"accountingMethod,omitempty"`
	AccountingPeriodEnd   string `json:"accountingPeriodEnd,omitempty"`
	AccountingPeriodStart string `json:"accountingPeriodStart,omitempty"`
	Address               string `json:"address"`
	APIToken              string `json:"apiToken,omitempty"`
	BRN                   string `json:"brn,omitempty"`
	BusinessID            string `json:"businessID,omitempty"`
	BusinessType          string `json:"businessType,omitempty"`
	City                  string `json:"city,omitempty"`
	CompanyNo             string `json:"companyNo,omitempty"`
	CompanyType           string `json:"companyType,omitempty"`
	ContactName           string `json:"contactName"`
	Country               string `json:"country"`
	Currency              string `json:"currency,omitempty"`
	DateFormat            string `json:"dateFormat,omitempty"`
	DirectorName          string `json:"directorName,omitempty"`
	Email                 string `json:"email,omitempty"`
	Fax                   string `json:"fax,omitempty"`
	HasClosingDate        *bool  `json:"hasClosingDate,omitempty"`
	Logo                  string `json:"logo,omitempty"`
	Mobile                string `json:"mobile,omitempty"`
	Name                  string `json:"name"`
	Phone                 string `json:"phone,omitempty"`
	PostCode              string `json:"postCode,omitempty"`
	RefID                 string `json:"refID,omitempty"`
	UseClass              *bool  `json:"useClass,omitempty"`
	VATNumber             string `json:"vatNumber,omitempty"`
	Website               string `json:"website,omitempty"`
	AllowEInvoicing       *bool  `json:"allowEInvoicing,omitempty"`
}

// Module is a product module enabled for a tenant.
type Module struct {
	ID       string `json:"id"`
	IsActive bool   `json:"isActive"`
	Name     string `json:"name"`
}

// Director is a company director as stored by the API.
type Director struct {
	FullName           string  `json:"fullName"`
	Position           string  `json:"position"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	IDType             string  `json:"idType"`
	IDNumber           string  `json:"idNumber"`
	DateOfBirth        *string `json:"dateOfBirth"`
	Nationality        string  `json:"nationality"`
	ResidentialAddress string  `json:"residentialAddress"`
	ProofOfIdentityURL string  `json:"proofOfIdentityUrl"`
	ProofOfAddressURL  string  `json:"proofOfAddressUrl"`
}

// Ownership is an ultimate beneficial owner (UBO) as stored by the API.
type Ownership struct {
	FullName            string  `json:"fullName"`
	IDType              string  `json:"idType"`
	IDNumber            string  `json:"idNumber"`
	DateOfBirth         *string `json:"dateOfBirth"`
	Nationality         string  `json:"nationality"`
	ResidentialAddress  string  `json:"residentialAddress"`
	OwnershipPercentage float64 `json:"ownershipPercentage"`
	ProofOfIdentityURL  string  `json:"proofOfIdentityUrl"`
}

// CreatePayload is the body of a tenant creation request.
// Directors and UBOs reuse the API record shapes; the "ubOs" key spelling
// matches the backend.
type CreatePayload struct {
	CompanyName          string      `json:"companyName"`
	Country              string      `json:"country"`
	AdminEmail           string      `json:"adminEmail"`
	FirstName            string      `json:"firstName"`
	LastName             string      `json:"lastName"`
	Password             string      `json:"password"`
	PhoneNumber          string      `json:"phoneNumber"`
	BusinessID           string      `json:"businessID"`
	Address              string      `json:"address"`
	City                 string      `json:"city"`
	PostCode             string      `json:"postCode"`
	Website              string      `json:"website"`
	Directors            []Director  `json:"directors"`
	UBOs                 []Ownership `json:"ubOs"`
	CompanyNameShortForm string      `json:"companyNameShortForm"`
	ConnectionString     string      `json:"connectionString"`
	Issuer               string      `json:"issuer"`
}
