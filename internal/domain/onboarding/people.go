package onboarding

import (
	"fmt"

	"github.com/Strob0t/PartnerConsole/internal/domain"
)

// DefaultIDType is sent when no identification type was chosen.
const DefaultIDType = "National ID"

// IDTypes are the selectable identification document types.
var IDTypes = []string{"National ID", "Passport", "Driver License", "Social Security Number"}

// Positions are the selectable director positions.
var Positions = []string{
	"CEO",
	"Managing Director",
	"Chairman",
	"Executive Director",
	"Non-Executive Director",
	"Director",
}

// Field keys accepted by SetDirectorField and SetUBOField.
const (
	FieldFullName    = "fullName"
	FieldPosition    = "position"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldIDType      = "idType"
	FieldIDNumber    = "idNumber"
	FieldDateOfBirth = "dateOfBirth"
	FieldNationality = "nationality"
	FieldAddress     = "address"
	FieldOwnership   = "ownershipPercentage"
)

// DirectorFields lists the editable director keys in form order.
var DirectorFields = []string{
	FieldFullName, FieldPosition, FieldEmail, FieldPhone, FieldIDType,
	FieldIDNumber, FieldDateOfBirth, FieldNationality, FieldAddress,
}

// UBOFields lists the editable UBO keys in form order.
var UBOFields = append(append([]string(nil), DirectorFields...), FieldOwnership)

// Person is the shared part of a director or UBO draft record.
type Person struct {
	ID          string `json:"id"` // list key only, never sent to the API
	FullName    string `json:"full_name"`
	Position    string `json:"position"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	IDType      string `json:"id_type"`
	IDNumber    string `json:"id_number"`
	DateOfBirth string `json:"date_of_birth"` // yyyy-mm-dd from a date input
	Nationality string `json:"nationality"`
	Address     string `json:"address"`
}

// Director is a director draft record.
type Director = Person

// UBO is an ultimate beneficial owner draft record.
type UBO struct {
	Person
	OwnershipPercentage string `json:"ownership_percentage"` // free text
}

// Get returns the value of key, or "" for unknown keys.
func (p *Person) Get(key string) string {
	if f := p.field(key); f != nil {
		return *f
	}
	return ""
}

func (p *Person) field(key string) *string {
	switch key {
	case FieldFullName:
		return &p.FullName
	case FieldPosition:
		return &p.Position
	case FieldEmail:
		return &p.Email
	case FieldPhone:
		return &p.Phone
	case FieldIDType:
		return &p.IDType
	case FieldIDNumber:
		return &p.IDNumber
	case FieldDateOfBirth:
		return &p.DateOfBirth
	case FieldNationality:
		return &p.Nationality
	case FieldAddress:
		return &p.Address
	}
	return nil
}

func (p *Person) set(key, value string) error {
	f := p.field(key)
	if f == nil {
		return fmt.Errorf("unknown field %q: %w", key, domain.ErrValidation)
	}
	*f = value
	return nil
}

// Get returns the value of key, or "" for unknown keys.
func (u *UBO) Get(key string) string {
	if key == FieldOwnership {
		return u.OwnershipPercentage
	}
	return u.Person.Get(key)
}

func (u *UBO) set(key, value string) error {
	if key == FieldOwnership {
		u.OwnershipPercentage = value
		return nil
	}
	return u.Person.set(key, value)
}
