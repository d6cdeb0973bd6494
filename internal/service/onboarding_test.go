package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Strob0t/PartnerConsole/internal/domain"
	"github.com/Strob0t/PartnerConsole/internal/domain/onboarding"
	"github.com/Strob0t/PartnerConsole/internal/port/tenantapi"
)

func completeDraft() *onboarding.Draft {
	d := onboarding.New()
	d.Company = onboarding.Company{Name: "Acme Co", ShortForm: "acme", Country: "France"}
	d.Admin = onboarding.Admin{FirstName: "Ada", LastName: "Lovelace", Email: "ada@acme.test", Password: "secret"}
	d.AddDirector()
	for d.Step < onboarding.TotalSteps {
		d.NextStep()
	}
	return d
}

func TestOnboardingService_Submit(t *testing.T) {
	c := newMemCache()
	sessions := newTestSessionService(c)
	api := &fakeAPI{createMsg: "Tenant created"}
	rec := &recorder{}
	svc := NewOnboardingService(api, sessions)
	svc.SetMetrics(rec)
	d := completeDraft()

	msg, err := svc.Submit(context.Background(), "s1", d, tenantapi.Credentials{Token: "tok"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if msg != "Tenant created" {
		t.Errorf("message = %q", msg)
	}
	if len(api.created) != 1 {
		t.Fatalf("create calls = %d, want 1", len(api.created))
	}
	p := api.created[0]
	if p.CompanyName != "Acme Co" || p.CompanyNameShortForm != "acme" || len(p.Directors) != 1 {
		t.Errorf("payload = %+v", p)
	}
	if api.lastCreds.Token != "tok" {
		t.Errorf("token = %q", api.lastCreds.Token)
	}
	if d.Step != 1 || d.Company.Name != "" || len(d.Directors) != 0 {
		t.Errorf("draft not reset: %+v", d)
	}
	stored, err := sessions.LoadDraft(context.Background(), "s1")
	if err != nil {
		t.Fatalf("load draft: %v", err)
	}
	if stored.Company.Name != "" || stored.Step != 1 {
		t.Errorf("stored draft not reset: %+v", stored)
	}
	if rec.created != 1 {
		t.Errorf("created metric = %d, want 1", rec.created)
	}
}

func TestOnboardingService_SubmitRefusesEarlySteps(t *testing.T) {
	api := &fakeAPI{}
	svc := NewOnboardingService(api, newTestSessionService(newMemCache()))
	d := completeDraft()
	d.PrevStep()

	_, err := svc.Submit(context.Background(), "s1", d, tenantapi.Credentials{})
	if !errors.Is(err, ErrNotFinalStep) || !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrNotFinalStep", err)
	}
	if len(api.created) != 0 {
		t.Error("early submission reached the API")
	}
}

func TestOnboardingService_SubmitMissingFields(t *testing.T) {
	api := &fakeAPI{}
	svc := NewOnboardingService(api, newTestSessionService(newMemCache()))
	d := completeDraft()
	d.Admin.Password = "  "

	_, err := svc.Submit(context.Background(), "s1", d, tenantapi.Credentials{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if UserMessage(err) != onboarding.MissingMessage {
		t.Errorf("message = %q", UserMessage(err))
	}
	if tenantapi.KindOf(err) != tenantapi.KindInvalidInput {
		t.Errorf("kind = %q", tenantapi.KindOf(err))
	}
	if len(api.created) != 0 {
		t.Error("invalid draft reached the API")
	}
}

func TestOnboardingService_SubmitServerFailure(t *testing.T) {
	apiErr := &tenantapi.Error{Kind: tenantapi.KindStatus, Status: 409, Message: "Short name already taken"}
	c := newMemCache()
	api := &fakeAPI{createErr: apiErr}
	svc := NewOnboardingService(api, newTestSessionService(c))
	d := completeDraft()

	_, err := svc.Submit(context.Background(), "s1", d, tenantapi.Credentials{})
	if UserMessage(err) != "Short name already taken" {
		t.Fatalf("err = %v", err)
	}
	if d.Company.Name != "Acme Co" || d.Step != onboarding.TotalSteps {
		t.Errorf("draft changed after failure: %+v", d)
	}
	if c.has("draft:s1") {
		t.Error("failed submission stored a draft")
	}
}
