package onboarding

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Strob0t/PartnerConsole/internal/domain"
)

// sequentialIDs replaces newID with a deterministic generator for the test.
func sequentialIDs(t *testing.T) {
	t.Helper()
	orig := newID
	n := 0
	newID = func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	}
	t.Cleanup(func() { newID = orig })
}

func directorIDs(d *Draft) []string {
	ids := make([]string, 0, len(d.Directors))
	for _, x := range d.Directors {
		ids = append(ids, x.ID)
	}
	return ids
}

func TestAddRemoveDirectorPreservesOrder(t *testing.T) {
	sequentialIDs(t)
	d := New()

	a := d.AddDirector()
	b := d.AddDirector()
	c := d.AddDirector()
	e := d.AddDirector()

	d.RemoveDirector(b)
	d.RemoveDirector("unknown")
	d.RemoveDirector(e)

	got := directorIDs(d)
	want := []string{a, c}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}

	f := d.AddDirector()
	d.RemoveDirector(a)
	got = directorIDs(d)
	want = []string{c, f}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for _, id := range got {
		if id == a || id == b || id == e {
			t.Fatalf("removed id %s still present", id)
		}
	}
}

func TestAddDirectorUsesTimeOrderedIDs(t *testing.T) {
	d := New()
	first := d.AddDirector()
	second := d.AddDirector()
	if first == "" || first == second {
		t.Fatalf("expected distinct ids, got %q and %q", first, second)
	}
	if first > second {
		t.Fatalf("expected time-ordered ids, got %q after %q", second, first)
	}
}

func TestRemoveUBO(t *testing.T) {
	sequentialIDs(t)
	d := New()
	a := d.AddUBO()
	b := d.AddUBO()
	d.RemoveUBO(a)
	if len(d.UBOs) != 1 || d.UBOs[0].ID != b {
		t.Fatalf("unexpected UBOs %+v", d.UBOs)
	}
}

func TestSetDirectorFieldReplacesSlice(t *testing.T) {
	sequentialIDs(t)
	d := New()
	d.AddDirector()
	d.AddDirector()
	before := d.Directors

	if err := d.SetDirectorField(1, FieldFullName, "Jane Roe"); err != nil {
		t.Fatal(err)
	}
	if d.Directors[1].FullName != "Jane Roe" {
		t.Fatalf("field not set: %+v", d.Directors[1])
	}
	if before[1].FullName != "" {
		t.Fatal("previous slice was mutated")
	}
	if d.Directors[0].FullName != "" || d.Directors[0].ID != "id-01" {
		t.Fatalf("other record changed: %+v", d.Directors[0])
	}
}

func TestSetFieldErrors(t *testing.T) {
	d := New()
	d.AddDirector()
	d.AddUBO()

	tests := []struct {
		name string
		fn   func() error
	}{
		{"director index", func() error { return d.SetDirectorField(3, FieldFullName, "x") }},
		{"director negative", func() error { return d.SetDirectorField(-1, FieldFullName, "x") }},
		{"director key", func() error { return d.SetDirectorField(0, "salary", "x") }},
		{"director ownership", func() error { return d.SetDirectorField(0, FieldOwnership, "10") }},
		{"ubo index", func() error { return d.SetUBOField(1, FieldFullName, "x") }},
		{"ubo key", func() error { return d.SetUBOField(0, "salary", "x") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSetUBOOwnership(t *testing.T) {
	d := New()
	d.AddUBO()
	if err := d.SetUBOField(0, FieldOwnership, "25.5"); err != nil {
		t.Fatal(err)
	}
	if err := d.SetUBOField(0, FieldNationality, "Mauritius"); err != nil {
		t.Fatal(err)
	}
	if got := d.UBOs[0].Get(FieldOwnership); got != "25.5" {
		t.Errorf("ownership = %q", got)
	}
	if got := d.UBOs[0].Get(FieldNationality); got != "Mauritius" {
		t.Errorf("nationality = %q", got)
	}
}

func TestStepNavigationClamps(t *testing.T) {
	d := New()
	d.PrevStep()
	if d.Step != 1 {
		t.Fatalf("expected step 1, got %d", d.Step)
	}
	for range 10 {
		d.NextStep()
	}
	if d.Step != TotalSteps || !d.IsFinalStep() {
		t.Fatalf("expected final step, got %d", d.Step)
	}
	d.PrevStep()
	if d.Step != TotalSteps-1 {
		t.Fatalf("expected step %d, got %d", TotalSteps-1, d.Step)
	}
	if d.StepTitle() != "UBOs" {
		t.Fatalf("unexpected title %q", d.StepTitle())
	}

	broken := &Draft{Step: 42}
	broken.NextStep()
	if broken.Step != TotalSteps {
		t.Fatalf("expected clamp to %d, got %d", TotalSteps, broken.Step)
	}
}

func TestValidate(t *testing.T) {
	d := New()
	err := d.Validate()
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(d.Missing()) != 6 {
		t.Fatalf("expected 6 missing fields, got %v", d.Missing())
	}

	d.Company = Company{Name: "Acme", Country: "Mauritius"}
	d.Admin = Admin{FirstName: "Jane", LastName: "Roe", Email: "jane@acme.test", Password: "pw"}
	if err := d.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d.Admin.Password = "   "
	missing := d.Missing()
	if len(missing) != 1 || missing[0] != "Password" {
		t.Fatalf("expected only Password missing, got %v", missing)
	}
}

func TestReset(t *testing.T) {
	d := New()
	d.Company.Name = "Acme"
	d.AddDirector()
	d.NextStep()
	_ = d.Documents.Attach(DocIncorporation, Attachment{Name: "inc.pdf", Size: 10})

	d.Reset()

	if d.Step != 1 || d.Company.Name != "" || len(d.Directors) != 0 || d.Documents.Count() != 0 {
		t.Fatalf("draft not reset: %+v", d)
	}
}
