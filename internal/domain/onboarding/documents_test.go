package onboarding

import (
	"errors"
	"testing"

	"github.com/Strob0t/PartnerConsole/internal/domain"
)

func TestDocumentsAttachRemove(t *testing.T) {
	var docs Documents

	if err := docs.Attach(DocIncorporation, Attachment{Name: "inc.pdf", Size: 84_000}); err != nil {
		t.Fatal(err)
	}
	if err := docs.Attach(DocBusinessLicense, Attachment{Name: "biz.png", Size: 1200}); err != nil {
		t.Fatal(err)
	}
	if docs.Count() != 2 {
		t.Fatalf("expected 2 documents, got %d", docs.Count())
	}
	if got := docs.Get(DocIncorporation).SizeDisplay(); got != "84 kB" {
		t.Errorf("SizeDisplay = %q, want 84 kB", got)
	}

	if err := docs.Remove(DocIncorporation); err != nil {
		t.Fatal(err)
	}
	if docs.Get(DocIncorporation) != nil || docs.Count() != 1 {
		t.Fatalf("incorporation not removed: %+v", docs)
	}
}

func TestDocumentsRejects(t *testing.T) {
	var docs Documents
	tests := []struct {
		name string
		kind DocumentKind
		a    Attachment
	}{
		{"unknown slot", DocumentKind("tax"), Attachment{Name: "x.pdf"}},
		{"no name", DocIncorporation, Attachment{}},
		{"too large", DocIncorporation, Attachment{Name: "big.pdf", Size: MaxDocumentSize + 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := docs.Attach(tt.kind, tt.a); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
