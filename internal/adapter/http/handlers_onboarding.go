package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Strob0t/PartnerConsole/internal/domain"
	"github.com/Strob0t/PartnerConsole/internal/domain/onboarding"
	"github.com/Strob0t/PartnerConsole/internal/domain/session"
	"github.com/Strob0t/PartnerConsole/internal/logger"
	"github.com/Strob0t/PartnerConsole/internal/service"
)

// Wizard actions posted by the step buttons. Remove actions carry the
// record id or document kind after a colon.
const (
	actionNext           = "next"
	actionPrev           = "prev"
	actionSave           = "save"
	actionAddDirector    = "add-director"
	actionRemoveDirector = "remove-director"
	actionAddUBO         = "add-ubo"
	actionRemoveUBO      = "remove-ubo"
	actionRemoveDocument = "remove-doc"
	actionSubmit         = "submit"
)

// maxWizardBody bounds a wizard post: three documents plus form fields.
const maxWizardBody = 3*onboarding.MaxDocumentSize + 1<<20

// maxFormMemory is the part of a multipart body held in memory.
const maxFormMemory = 8 << 20

// Wizard renders the current onboarding step.
func (h *Handlers) Wizard(w http.ResponseWriter, r *http.Request) {
	sess := sessionOf(r)
	d, err := h.Sessions.LoadDraft(r.Context(), sess.ID)
	if err != nil {
		logger.From(r.Context()).Error("load draft", "error", err)
		d = onboarding.New()
	}

	h.render(w, r, http.StatusOK, "wizard", wizardPage{
		layout:      h.layout(r, "Add partner"),
		Step:        d.Step,
		TotalSteps:  onboarding.TotalSteps,
		StepTitle:   d.StepTitle(),
		Steps:       stepMarks(d),
		IsFinal:     d.IsFinalStep(),
		Company:     companyFields(d.Company),
		Admin:       adminFields(d.Admin),
		Directors:   directorForms(d),
		UBOs:        uboForms(d),
		Documents:   documentSlots(d),
		DocCount:    d.Documents.Count(),
		HasPassword: d.Admin.Password != "",
		Accept:      onboarding.AcceptedDocumentTypes,
	})
}

// WizardPost stores the posted step fields, applies the chosen action and
// redirects back to the wizard.
func (h *Handlers) WizardPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWizardBody)
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxFormMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	ctx := r.Context()
	sess := sessionOf(r)
	d, err := h.Sessions.LoadDraft(ctx, sess.ID)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	// A form rendered for another step (e.g. a second tab) must not write
	// its fields into the current one.
	if r.PostForm.Get("step") == strconv.Itoa(d.Step) {
		if err := applyStepFields(r, d); err != nil {
			sess.SetFlash(session.FlashError, "Error", err.Error())
		}
		if d.Step == onboarding.TotalSteps {
			if err := attachDocuments(r, d); err != nil {
				sess.SetFlash(session.FlashError, "Document rejected", strings.TrimSuffix(err.Error(), ": "+domain.ErrValidation.Error()))
			}
		}
	}

	action, arg, _ := strings.Cut(r.PostForm.Get("action"), ":")
	switch action {
	case actionNext:
		d.NextStep()
	case actionPrev:
		d.PrevStep()
	case actionAddDirector:
		d.AddDirector()
	case actionRemoveDirector:
		d.RemoveDirector(arg)
	case actionAddUBO:
		d.AddUBO()
	case actionRemoveUBO:
		d.RemoveUBO(arg)
	case actionRemoveDocument:
		if err := d.Documents.Remove(onboarding.DocumentKind(arg)); err != nil {
			logger.From(ctx).Warn("remove document", "kind", arg, "error", err)
		}
	case actionSave, actionSubmit:
	default:
		logger.From(ctx).Warn("unknown wizard action", "action", action)
	}

	if err := h.Sessions.SaveDraft(ctx, sess.ID, d); err != nil {
		writeInternalError(w, err)
		return
	}

	if action == actionSubmit {
		h.submit(r, sess, d)
	}
	http.Redirect(w, r, addPath, http.StatusSeeOther)
}

func (h *Handlers) submit(r *http.Request, sess *session.Session, d *onboarding.Draft) {
	_, err := h.Onboarding.Submit(r.Context(), sess.ID, d, credentials(r))
	switch {
	case err == nil:
		sess.SetFlash(session.FlashSuccess, "Success", "Partner created successfully.")
	case errors.Is(err, service.ErrNotFinalStep):
		sess.SetFlash(session.FlashInfo, "Not yet", "Finish every step before creating the partner.")
	case errors.Is(err, domain.ErrValidation):
		msg := onboarding.MissingMessage
		if missing := d.Missing(); len(missing) > 0 {
			msg += " Missing: " + strings.Join(missing, ", ") + "."
		}
		sess.SetFlash(session.FlashError, "Missing Information", msg)
	default:
		sess.SetFlash(session.FlashError, "Error", messageOr(err, "Something went wrong while creating the partner."))
	}
}

