package onboarding

import (
	"strconv"
	"strings"
	"time"

	"github.com/Strob0t/PartnerConsole/internal/domain/tenant"
)

// isoMillis is the timestamp shape the API expects for dates.
const isoMillis = "2006-01-02T15:04:05.000Z"

// ToISOOrNull converts a form date to an ISO-8601 UTC timestamp with
// millisecond precision. Empty or unparsable input yields nil.
func ToISOOrNull(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			out := t.UTC().Format(isoMillis)
			return &out
		}
	}
	return nil
}

// parseOwnership reads a free-text percentage; blank or unparsable is 0.
func parseOwnership(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%")), 64)
	if err != nil {
		return 0
	}
	return v
}

func idTypeOrDefault(s string) string {
	if s == "" {
		return DefaultIDType
	}
	return s
}

// BuildPayload maps the draft to the tenant creation request. Document URL
// fields are always empty; selected files are not uploaded.
func (d *Draft) BuildPayload() tenant.CreatePayload {
	directors := make([]tenant.Director, 0, len(d.Directors))
	for _, x := range d.Directors {
		directors = append(directors, tenant.Director{
			FullName:           x.FullName,
			IDType:             idTypeOrDefault(x.IDType),
			IDNumber:           x.IDNumber,
			DateOfBirth:        ToISOOrNull(x.DateOfBirth),
			Nationality:        x.Nationality,
			ResidentialAddress: x.Address,
			Position:           x.Position,
			Email:              x.Email,
			Phone:              x.Phone,
			ProofOfIdentityURL: "",
			ProofOfAddressURL:  "",
		})
	}

	ubos := make([]tenant.Ownership, 0, len(d.UBOs))
	for _, u := range d.UBOs {
		ubos = append(ubos, tenant.Ownership{
			FullName:            u.FullName,
			IDType:              idTypeOrDefault(u.IDType),
			IDNumber:            u.IDNumber,
			DateOfBirth:         ToISOOrNull(u.DateOfBirth),
			Nationality:         u.Nationality,
			ResidentialAddress:  u.Address,
			OwnershipPercentage: parseOwnership(u.OwnershipPercentage),
			ProofOfIdentityURL:  "",
		})
	}

	return tenant.CreatePayload{
		CompanyName:          d.Company.Name,
		Country:              d.Company.Country,
		AdminEmail:           d.Admin.Email,
		FirstName:            d.Admin.FirstName,
		LastName:             d.Admin.LastName,
		Password:             d.Admin.Password,
		PhoneNumber:          d.Admin.Phone,
		BusinessID:           d.Company.BusinessID,
		Address:              d.Company.Address,
		City:                 d.Company.City,
		PostCode:             d.Company.PostCode,
		Website:              d.Company.Website,
		Directors:            directors,
		UBOs:                 ubos,
		CompanyNameShortForm: d.Company.ShortForm,
		ConnectionString:     "",
		Issuer:               "",
	}
}
