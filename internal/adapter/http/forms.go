package http

import (
	"fmt"
	"net/http"

	"github.com/Strob0t/PartnerConsole/internal/domain/onboarding"
)

// formField is one rendered wizard input.
type formField struct {
	Name     string
	Label    string
	Type     string // text, email, tel, url, date, password or select
	Value    string
	Options  []string
	Required bool
}

// personForm is one director or UBO card.
type personForm struct {
	Index  int
	ID     string
	Fields []formField
	Remove string // action value that removes the card
}

type documentSlot struct {
	Kind   onboarding.DocumentKind
	Title  string
	Input  string
	File   *onboarding.Attachment
	Remove string
}

var fieldLabels = map[string]string{
	onboarding.FieldFullName:    "Full name",
	onboarding.FieldPosition:    "Position",
	onboarding.FieldEmail:       "Email",
	onboarding.FieldPhone:       "Phone",
	onboarding.FieldIDType:      "ID type",
	onboarding.FieldIDNumber:    "ID number",
	onboarding.FieldDateOfBirth: "Date of birth",
	onboarding.FieldNationality: "Nationality",
	onboarding.FieldAddress:     "Residential address",
	onboarding.FieldOwnership:   "Ownership %",
}

// Company and admin form keys.
const (
	keyCompanyName  = "company_name"
	keyShortForm    = "company_short_form"
	keyBusinessID   = "business_id"
	keyCountry      = "country"
	keyWebsite      = "website"
	keyAddress      = "address"
	keyCity         = "city"
	keyPostCode     = "post_code"
	keyAdminFirst   = "admin_first_name"
	keyAdminLast    = "admin_last_name"
	keyAdminEmail   = "admin_email"
	keyAdminPhone   = "admin_phone"
	keyAdminPass    = "admin_password" //nolint:gosec // form field name
	docInputPrefix  = "doc-"
	directorPrefix  = "director"
	uboPrefix       = "ubo"
	personKeyFormat = "%s-%d-%s"
)

func companyFields(c onboarding.Company) []formField {
	return []formField{
		{Name: keyCompanyName, Label: "Company name", Type: "text", Value: c.Name, Required: true},
		{Name: keyShortForm, Label: "Short name", Type: "text", Value: c.ShortForm},
		{Name: keyBusinessID, Label: "Business ID", Type: "text", Value: c.BusinessID},
		{Name: keyCountry, Label: "Country", Type: "select", Value: c.Country, Options: onboarding.Countries, Required: true},
		{Name: keyWebsite, Label: "Website", Type: "url", Value: c.Website},
		{Name: keyAddress, Label: "Address", Type: "text", Value: c.Address},
		{Name: keyCity, Label: "City", Type: "text", Value: c.City},
		{Name: keyPostCode, Label: "Post code", Type: "text", Value: c.PostCode},
	}
}

// adminFields never echoes the password back into the page.
func adminFields(a onboarding.Admin) []formField {
	return []formField{
		{Name: keyAdminFirst, Label: "First name", Type: "text", Value: a.FirstName, Required: true},
		{Name: keyAdminLast, Label: "Last name", Type: "text", Value: a.LastName, Required: true},
		{Name: keyAdminEmail, Label: "Email", Type: "email", Value: a.Email, Required: true},
		{Name: keyAdminPhone, Label: "Phone", Type: "tel", Value: a.Phone},
		{Name: keyAdminPass, Label: "Password", Type: "password", Required: a.Password == ""},
	}
}

func personFieldName(prefix string, index int, key string) string {
	return fmt.Sprintf(personKeyFormat, prefix, index, key)
}

func personField(prefix string, index int, key, value string) formField {
	f := formField{Name: personFieldName(prefix, index, key), Label: fieldLabels[key], Type: "text", Value: value}
	switch key {
	case onboarding.FieldEmail:
		f.Type = "email"
	case onboarding.FieldPhone:
		f.Type = "tel"
	case onboarding.FieldDateOfBirth:
		f.Type = "date"
	case onboarding.FieldIDType:
		f.Type, f.Options = "select", onboarding.IDTypes
	case onboarding.FieldPosition:
		f.Type, f.Options = "select", onboarding.Positions
	case onboarding.FieldNationality:
		f.Type, f.Options = "select", onboarding.Countries
	}
	return f
}

func directorForms(d *onboarding.Draft) []personForm {
	forms := make([]personForm, 0, len(d.Directors))
	for i := range d.Directors {
		p := &d.Directors[i]
		fields := make([]formField, 0, len(onboarding.DirectorFields))
		for _, key := range onboarding.DirectorFields {
			fields = append(fields, personField(directorPrefix, i, key, p.Get(key)))
		}
		forms = append(forms, personForm{Index: i, ID: p.ID, Fields: fields, Remove: actionRemoveDirector + ":" + p.ID})
	}
	return forms
}

func uboForms(d *onboarding.Draft) []personForm {
	forms := make([]personForm, 0, len(d.UBOs))
	for i := range d.UBOs {
		u := &d.UBOs[i]
		fields := make([]formField, 0, len(onboarding.UBOFields))
		for _, key := range onboarding.UBOFields {
			fields = append(fields, personField(uboPrefix, i, key, u.Get(key)))
		}
		forms = append(forms, personForm{Index: i, ID: u.ID, Fields: fields, Remove: actionRemoveUBO + ":" + u.ID})
	}
	return forms
}

func documentSlots(d *onboarding.Draft) []documentSlot {
	slots := make([]documentSlot, 0, len(onboarding.DocumentKinds))
	for _, k := range onboarding.DocumentKinds {
		slots = append(slots, documentSlot{
			Kind:   k,
			Title:  k.Title(),
			Input:  docInputPrefix + string(k),
			File:   d.Documents.Get(k),
			Remove: actionRemoveDocument + ":" + string(k),
		})
	}
	return slots
}

// applyStepFields copies the posted fields of the draft's current step into
// it. Fields absent from the form are left alone.
func applyStepFields(r *http.Request, d *onboarding.Draft) error {
	form := r.PostForm
	set := func(key string, dst *string) {
		if form.Has(key) {
			*dst = form.Get(key)
		}
	}

	switch d.Step {
	case 1:
		set(keyCompanyName, &d.Company.Name)
		set(keyShortForm, &d.Company.ShortForm)
		set(keyBusinessID, &d.Company.BusinessID)
		set(keyCountry, &d.Company.Country)
		set(keyWebsite, &d.Company.Website)
		set(keyAddress, &d.Company.Address)
		set(keyCity, &d.Company.City)
		set(keyPostCode, &d.Company.PostCode)
	case 2:
		set(keyAdminFirst, &d.Admin.FirstName)
		set(keyAdminLast, &d.Admin.LastName)
		set(keyAdminEmail, &d.Admin.Email)
		set(keyAdminPhone, &d.Admin.Phone)
		if pw := form.Get(keyAdminPass); pw != "" {
			d.Admin.Password = pw
		}
	case 3:
		for i, p := range d.Directors {
			if form.Get(personFieldName(directorPrefix, i, "id")) != p.ID {
				continue
			}
			for _, key := range onboarding.DirectorFields {
				name := personFieldName(directorPrefix, i, key)
				if !form.Has(name) {
					continue
				}
				if err := d.SetDirectorField(i, key, form.Get(name)); err != nil {
					return err
				}
			}
		}
	case 4:
		for i, u := range d.UBOs {
			if form.Get(personFieldName(uboPrefix, i, "id")) != u.ID {
				continue
			}
			for _, key := range onboarding.UBOFields {
				name := personFieldName(uboPrefix, i, key)
				if !form.Has(name) {
					continue
				}
				if err := d.SetUBOField(i, key, form.Get(name)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// attachDocuments records the metadata of files posted on the documents
// step. File contents are discarded.
func attachDocuments(r *http.Request, d *onboarding.Draft) error {
	if r.MultipartForm == nil {
		return nil
	}
	for _, k := range onboarding.DocumentKinds {
		files := r.MultipartForm.File[docInputPrefix+string(k)]
		if len(files) == 0 || files[0].Filename == "" {
			continue
		}
		fh := files[0]
		err := d.Documents.Attach(k, onboarding.Attachment{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
