package onboarding

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/Strob0t/PartnerConsole/internal/domain"
)

// DocumentKind names one of the document slots on the documents step.
type DocumentKind string

const (
	DocIncorporation   DocumentKind = "inc"
	DocProofOfAddress  DocumentKind = "poa"
	DocBusinessLicense DocumentKind = "biz"
)

// DocumentKinds lists the document slots in display order.
var DocumentKinds = []DocumentKind{DocIncorporation, DocProofOfAddress, DocBusinessLicense}

// Title is the slot heading.
func (k DocumentKind) Title() string {
	switch k {
	case DocIncorporation:
		return "Certificate of Incorporation"
	case DocProofOfAddress:
		return "Proof of Address"
	case DocBusinessLicense:
		return "Business License"
	}
	return string(k)
}

// MaxDocumentSize is the largest accepted document.
const MaxDocumentSize = 10 << 20

// AcceptedDocumentTypes is the file input accept list.
const AcceptedDocumentTypes = ".pdf,.doc,.docx,.jpg,.jpeg,.png"

// Attachment describes a selected file. Only metadata is kept; file
// contents are never stored or uploaded.
type Attachment struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
}

// SizeDisplay renders the size for humans, e.g. "82 kB".
func (a Attachment) SizeDisplay() string {
	if a.Size < 0 {
		return humanize.Bytes(0)
	}
	return humanize.Bytes(uint64(a.Size))
}

// Documents holds the selected file per slot.
type Documents struct {
	Incorporation   *Attachment `json:"incorporation,omitempty"`
	ProofOfAddress  *Attachment `json:"proof_of_address,omitempty"`
	BusinessLicense *Attachment `json:"business_license,omitempty"`
}

func (d *Documents) slot(kind DocumentKind) (**Attachment, error) {
	switch kind {
	case DocIncorporation:
		return &d.Incorporation, nil
	case DocProofOfAddress:
		return &d.ProofOfAddress, nil
	case DocBusinessLicense:
		return &d.BusinessLicense, nil
	}
	return nil, fmt.Errorf("unknown document %q: %w", kind, domain.ErrValidation)
}

// Get returns the attachment selected for kind, or nil.
func (d *Documents) Get(kind DocumentKind) *Attachment {
	s, err := d.slot(kind)
	if err != nil {
		return nil
	}
	return *s
}

// Attach selects a file for kind, replacing any previous selection.
func (d *Documents) Attach(kind DocumentKind, a Attachment) error {
	s, err := d.slot(kind)
	if err != nil {
		return err
	}
	if a.Name == "" {
		return fmt.Errorf("document %s has no file name: %w", kind, domain.ErrValidation)
	}
	if a.Size > MaxDocumentSize {
		return fmt.Errorf("%s exceeds %s: %w", a.Name, humanize.Bytes(MaxDocumentSize), domain.ErrValidation)
	}
	*s = &a
	return nil
}

// Remove clears the selection for kind.
func (d *Documents) Remove(kind DocumentKind) error {
	s, err := d.slot(kind)
	if err != nil {
		return err
	}
	*s = nil
	return nil
}

// Count is the number of selected files.
func (d *Documents) Count() int {
	n := 0
	for _, k := range DocumentKinds {
		if d.Get(k) != nil {
			n++
		}
	}
	return n
}
