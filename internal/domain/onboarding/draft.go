// Package onboarding holds the partner onboarding wizard draft and the
// operations that edit it and turn it into a tenant creation payload.
package onboarding

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/Strob0t/PartnerConsole/internal/domain"
)

// TotalSteps is the number of wizard steps.
const TotalSteps = 5

// StepTitles are the wizard step headings, indexed by step-1.
var StepTitles = [TotalSteps]string{
	"Company Info",
	"Admin Contact",
	"Directors",
	"UBOs",
	"Documents",
}

// MissingMessage is shown when the required-field guard fails.
const MissingMessage = "Please complete all required fields before proceeding."

// newID returns a time-ordered identifier for draft records.
var newID = func() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Company holds the company step fields.
type Company struct {
	Name       string `json:"name"`
	ShortForm  string `json:"short_form"`
	BusinessID string `json:"business_id"`
	Country    string `json:"country"`
	Website    string `json:"website"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostCode   string `json:"post_code"`
}

// Admin holds the admin contact step fields.
type Admin struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"` //nolint:gosec // form field, not a hardcoded secret
}

// Draft is the in-progress onboarding form. The zero value is not on a
// valid step; use New.
type Draft struct {
	Step      int        `json:"step"`
	Company   Company    `json:"company"`
	Admin     Admin      `json:"admin"`
	Directors []Director `json:"directors"`
	UBOs      []UBO      `json:"ubos"`
	Documents Documents  `json:"documents"`
}

// New returns an empty draft on step 1.
func New() *Draft {
	return &Draft{Step: 1}
}

// Reset clears the draft back to an empty form on step 1.
func (d *Draft) Reset() {
	*d = Draft{Step: 1}
}

// NextStep advances one step; no-op on the last step.
func (d *Draft) NextStep() {
	d.normalizeStep()
	if d.Step < TotalSteps {
		d.Step++
	}
}

// PrevStep goes back one step; no-op on the first step.
func (d *Draft) PrevStep() {
	d.normalizeStep()
	if d.Step > 1 {
		d.Step--
	}
}

// IsFinalStep reports whether the draft is on the last step.
func (d *Draft) IsFinalStep() bool {
	return d.Step == TotalSteps
}

// StepTitle is the heading of the current step.
func (d *Draft) StepTitle() string {
	d.normalizeStep()
	return StepTitles[d.Step-1]
}

func (d *Draft) normalizeStep() {
	d.Step = min(max(d.Step, 1), TotalSteps)
}

// AddDirector appends a blank director and returns its id.
func (d *Draft) AddDirector() string {
	id := newID()
	d.Directors = append(slices.Clip(d.Directors), Director{ID: id})
	return id
}

// RemoveDirector drops the director with the given id. Unknown ids are ignored.
func (d *Draft) RemoveDirector(id string) {
	d.Directors = slices.DeleteFunc(slices.Clone(d.Directors), func(x Director) bool { return x.ID == id })
}

// AddUBO appends a blank UBO and returns its id.
func (d *Draft) AddUBO() string {
	id := newID()
	d.UBOs = append(slices.Clip(d.UBOs), UBO{Person: Person{ID: id}})
	return id
}

// RemoveUBO drops the UBO with the given id. Unknown ids are ignored.
func (d *Draft) RemoveUBO(id string) {
	d.UBOs = slices.DeleteFunc(slices.Clone(d.UBOs), func(x UBO) bool { return x.ID == id })
}

// SetDirectorField replaces one field of the director at index. The
// director list is replaced by a new slice; other records are untouched.
func (d *Draft) SetDirectorField(index int, key, value string) error {
	if index < 0 || index >= len(d.Directors) {
		return fmt.Errorf("director index %d out of range: %w", index, domain.ErrValidation)
	}
	next := slices.Clone(d.Directors)
	if err := next[index].set(key, value); err != nil {
		return err
	}
	d.Directors = next
	return nil
}

// SetUBOField replaces one field of the UBO at index, producing a new slice.
func (d *Draft) SetUBOField(index int, key, value string) error {
	if index < 0 || index >= len(d.UBOs) {
		return fmt.Errorf("ubo index %d out of range: %w", index, domain.ErrValidation)
	}
	next := slices.Clone(d.UBOs)
	if err := next[index].set(key, value); err != nil {
		return err
	}
	d.UBOs = next
	return nil
}

// Missing lists the labels of required fields that are still blank.
func (d *Draft) Missing() []string {
	required := []struct {
		label string
		value string
	}{
		{"Company name", d.Company.Name},
		{"Country", d.Company.Country},
		{"Admin email", d.Admin.Email},
		{"First name", d.Admin.FirstName},
		{"Last name", d.Admin.LastName},
		{"Password", d.Admin.Password},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.label)
		}
	}
	return missing
}

// Validate is the required-field guard run before submission.
func (d *Draft) Validate() error {
	if missing := d.Missing(); len(missing) > 0 {
		return fmt.Errorf("missing %s: %w", strings.Join(missing, ", "), domain.ErrValidation)
	}
	return nil
}
