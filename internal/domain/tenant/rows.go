package tenant

import "strings"

// Status labels shown for a partner row.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// PartnerRow is the flat dashboard projection of a Tenant.
type PartnerRow struct {
	ID         string
	Company    string
	Short      string
	IsActive   bool
	StatusText string

	ContactName string
	AdminEmail  string
	PhoneNumber string

	Address string
	Country string

	ValidUptoRaw   string
	ExpiresDisplay string

	Modules           []Module
	ModulesNames      string
	ActiveModuleCount int

	Issuer  string
	Details *Details
}

// HasValidShort reports whether the row carries a short name usable in URLs.
func (r PartnerRow) HasValidShort() bool {
	return r.Short != "" && r.Short != Placeholder
}

// MapToPartnerRows projects tenants into dashboard rows. The input is not modified.
func MapToPartnerRows(tenants []Tenant) []PartnerRow {
	rows := make([]PartnerRow, 0, len(tenants))
	for i := range tenants {
		rows = append(rows, toPartnerRow(&tenants[i]))
	}
	return rows
}

func toPartnerRow(t *Tenant) PartnerRow {
	var details Details
	if t.Details != nil {
		details = *t.Details
	}

	names := make([]string, 0, len(t.Modules))
	active := 0
	for _, m := range t.Modules {
		names = append(names, m.Name)
		if m.IsActive {
			active++
		}
	}

	modules := make([]Module, len(t.Modules))
	copy(modules, t.Modules)

	status := StatusInactive
	if t.IsActive {
		status = StatusActive
	}

	row := PartnerRow{
		ID:                t.ID,
		Company:           firstNonEmpty("-", t.CompanyName, details.Name, t.CompanyNameShortForm),
		Short:             firstNonEmpty(Placeholder, t.CompanyNameShortForm),
		IsActive:          t.IsActive,
		StatusText:        status,
		ContactName:       firstNonEmpty(Placeholder, details.ContactName),
		AdminEmail:        firstNonEmpty(Placeholder, t.AdminEmail),
		PhoneNumber:       firstNonEmpty(Placeholder, t.PhoneNumber),
		Address:           firstNonEmpty(Placeholder, details.Address),
		Country:           firstNonEmpty(Placeholder, t.Country),
		ValidUptoRaw:      t.ValidUpto,
		ExpiresDisplay:    ExpiresDisplay(t.ValidUpto),
		Modules:           modules,
		ModulesNames:      strings.Join(names, ", "),
		ActiveModuleCount: active,
		Issuer:            t.Issuer,
	}
	if t.Details != nil {
		d := *t.Details
		row.Details = &d
	}
	return row
}

// firstNonEmpty returns the first non-blank value, or fallback.
func firstNonEmpty(fallback string, values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return fallback
}
