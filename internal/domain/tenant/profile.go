package tenant

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Tab identifies a section of the partner detail view.
type Tab string

// Detail view tabs, in display order.
const (
	TabOverview  Tab = "overview"
	TabDirectors Tab = "directors"
	TabFinancial Tab = "financial"
	TabDocuments Tab = "documents"
	TabModules   Tab = "modules"
)

// Tabs lists the detail view tabs in display order.
var Tabs = []Tab{TabOverview, TabDirectors, TabFinancial, TabDocuments, TabModules}

// ParseTab returns the named tab, defaulting to TabOverview.
func ParseTab(s string) Tab {
	for _, t := range Tabs {
		if string(t) == strings.ToLower(strings.TrimSpace(s)) {
			return t
		}
	}
	return TabOverview
}

// Label is the human title of the tab.
func (t Tab) Label() string {
	switch t {
	case TabDirectors:
		return "Directors & UBOs"
	case TabFinancial:
		return "Financial"
	case TabDocuments:
		return "Documents"
	case TabModules:
		return "Modules"
	default:
		return "Overview"
	}
}

// Profile is the read-only detail view projection of a Tenant.
type Profile struct {
	CompanyName string
	Short       string
	IsActive    bool
	StatusText  string

	AdminName  string
	AdminEmail string
	Phone      string

	Address  string
	City     string
	PostCode string
	Country  string
	Website  string

	BusinessID  string
	CompanyType string
	VATNumber   string
	Currency    string

	ExpiresDisplay  string
	ExpiresRelative string

	Directors []PersonView
	UBOs      []PersonView
	Modules   []Module
}

// PersonView is one director or UBO line in the detail view.
type PersonView struct {
	FullName    string
	Position    string
	Email       string
	Phone       string
	IDType      string
	IDNumber    string
	DateOfBirth string
	Nationality string
	Address     string
	Ownership   string
}

// NewProfile projects t for display. fallbackShort is used when the tenant
// carries no name at all, typically the short name from the URL.
func NewProfile(t *Tenant, fallbackShort string, now time.Time) Profile {
	var d Details
	if t.Details != nil {
		d = *t.Details
	}

	adminName := strings.TrimSpace(strings.Join(nonBlank(strings.TrimSpace(t.FirstName), strings.TrimSpace(t.LastName)), " "))
	if adminName == "" {
		adminName = firstNonEmpty(Placeholder, d.ContactName)
	}

	status := StatusInactive
	if t.IsActive {
		status = StatusActive
	}

	p := Profile{
		CompanyName:    firstNonEmpty(Placeholder, t.CompanyName, d.Name, t.CompanyNameShortForm, fallbackShort),
		Short:          t.CompanyNameShortForm,
		IsActive:       t.IsActive,
		StatusText:     status,
		AdminName:      adminName,
		AdminEmail:     firstNonEmpty(Placeholder, t.AdminEmail),
		Phone:          firstNonEmpty(Placeholder, d.Mobile, d.Phone),
		Address:        firstNonEmpty(Placeholder, d.Address),
		City:           firstNonEmpty(Placeholder, d.City),
		PostCode:       firstNonEmpty(Placeholder, d.PostCode),
		Country:        firstNonEmpty(Placeholder, d.Country, t.Country),
		Website:        d.Website,
		BusinessID:     firstNonEmpty(Placeholder, d.BusinessID, d.BRN),
		CompanyType:    firstNonEmpty(Placeholder, d.CompanyType, d.BusinessType),
		VATNumber:      firstNonEmpty(Placeholder, d.VATNumber),
		Currency:       firstNonEmpty(Placeholder, d.Currency),
		ExpiresDisplay: ExpiresDisplay(t.ValidUpto),
		Modules:        append([]Module(nil), t.Modules...),
	}

	if !HasNoExpiry(t.ValidUpto) {
		if at, ok := ParseAPITime(t.ValidUpto); ok {
			p.ExpiresRelative = humanize.RelTime(at, now, "ago", "from now")
		}
	}

	for _, dir := range t.Directors {
		p.Directors = append(p.Directors, PersonView{
			FullName:    firstNonEmpty(Placeholder, dir.FullName),
			Position:    firstNonEmpty(Placeholder, dir.Position),
			Email:       firstNonEmpty(Placeholder, dir.Email),
			Phone:       firstNonEmpty(Placeholder, dir.Phone),
			IDType:      firstNonEmpty(Placeholder, dir.IDType),
			IDNumber:    firstNonEmpty(Placeholder, dir.IDNumber),
			DateOfBirth: DatePart(deref(dir.DateOfBirth)),
			Nationality: firstNonEmpty(Placeholder, dir.Nationality),
			Address:     firstNonEmpty(Placeholder, dir.ResidentialAddress),
		})
	}
	for _, u := range t.UBOs {
		p.UBOs = append(p.UBOs, PersonView{
			FullName:    firstNonEmpty(Placeholder, u.FullName),
			IDType:      firstNonEmpty(Placeholder, u.IDType),
			IDNumber:    firstNonEmpty(Placeholder, u.IDNumber),
			DateOfBirth: DatePart(deref(u.DateOfBirth)),
			Nationality: firstNonEmpty(Placeholder, u.Nationality),
			Address:     firstNonEmpty(Placeholder, u.ResidentialAddress),
			Ownership:   strconv.FormatFloat(u.OwnershipPercentage, 'f', -1, 64) + "%",
		})
	}
	return p
}

// ActiveModuleCount counts the enabled modules in the profile.
func (p Profile) ActiveModuleCount() int {
	n := 0
	for _, m := range p.Modules {
		if m.IsActive {
			n++
		}
	}
	return n
}

func nonBlank(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
