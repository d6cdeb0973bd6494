package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Strob0t/PartnerConsole/internal/domain/dashboard"
	"github.com/Strob0t/PartnerConsole/internal/domain/session"
	"github.com/Strob0t/PartnerConsole/internal/domain/tenant"
	"github.com/Strob0t/PartnerConsole/internal/service"
)

// Dashboard lists, searches and paginates partners. The list is fetched on
// every render.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("q"))
	size := dashboard.ParsePageSize(q.Get("size"))

	data := dashboardPage{Query: query, PageSizes: dashboard.PageSizes}

	listing, err := h.Tenants.List(r.Context(), credentials(r))
	if err != nil {
		data.Error = messageOr(err, "Failed to fetch tenants")
	}
	data.Stats = listing.Stats
	data.Page = dashboard.Paginate(dashboard.Filter(listing.Rows, query), dashboard.ParsePage(q.Get("page")), size)
	data.Links = pageLinks(query, data.Page)
	if data.Page.HasPrev() {
		data.PrevURL = dashboardURL(query, data.Page.Page-1, data.Page.PageSize)
	}
	if data.Page.HasNext() {
		data.NextURL = dashboardURL(query, data.Page.Page+1, data.Page.PageSize)
	}

	data.layout = h.layout(r, "Partners")
	h.render(w, r, http.StatusOK, "dashboard", data)
}

func verbOf(action string) string {
	if action == service.ActionDeactivate {
		return "Deactivate"
	}
	return "Activate"
}

func validShort(short string) bool {
	return strings.TrimSpace(short) != "" && short != tenant.Placeholder
}

// ConfirmToggle asks before activating or deactivating a partner.
func (h *Handlers) ConfirmToggle(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		short := urlParam(r, "short")
		company := strings.TrimSpace(r.URL.Query().Get("company"))
		if company == "" {
			company = short
		}

		data := confirmPage{
			Action:  action,
			Verb:    verbOf(action),
			Short:   short,
			Company: company,
			Valid:   validShort(short),
		}
		switch {
		case !data.Valid:
			data.Warning = "This partner doesn't have a valid short name."
		case action == service.ActionDeactivate:
			data.Warning = fmt.Sprintf("This will deactivate %s. You can reactivate later.", company)
		default:
			data.Warning = fmt.Sprintf("This will activate %s.", company)
		}

		title := data.Verb + " Partner?"
		if !data.Valid {
			title = "Missing short name"
		}
		data.layout = h.layout(r, title)
		h.render(w, r, http.StatusOK, "confirm", data)
	}
}

// Toggle activates or deactivates a partner, then returns to the full list.
func (h *Handlers) Toggle(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		short := urlParam(r, "short")
		_ = r.ParseForm()
		company := strings.TrimSpace(r.PostForm.Get("company"))
		if company == "" {
			company = short
		}
		sess := sessionOf(r)

		if !validShort(short) {
			sess.SetFlash(session.FlashError, "Missing short name", "This partner doesn't have a valid short name.")
			http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
			return
		}

		if _, err := h.Tenants.Toggle(r.Context(), action, short, credentials(r)); err != nil {
			sess.SetFlash(session.FlashError, "Error", messageOr(err, fmt.Sprintf("Failed to %s partner.", action)))
			http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
			return
		}

		past := "activated"
		title := "Activated"
		if action == service.ActionDeactivate {
			past, title = "deactivated", "Deactivated"
		}
		sess.SetFlash(session.FlashSuccess, title, fmt.Sprintf("%s has been %s.", company, past))
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
	}
}

// View renders one partner's profile across read-only tabs.
func (h *Handlers) View(w http.ResponseWriter, r *http.Request) {
	short := urlParam(r, "short")
	tab := tenant.ParseTab(r.URL.Query().Get("tab"))

	data := viewPage{Short: short, Tab: tab, Tabs: tabLinks(short, tab)}
	profile, err := h.Tenants.Get(r.Context(), short, credentials(r))
	if err != nil {
		data.Error = messageOr(err, "Failed to load partner")
		sessionOf(r).SetFlash(session.FlashError, "Error", data.Error)
	} else {
		data.Profile = profile
		data.Loaded = true
	}

	title := short
	if data.Loaded {
		title = profile.CompanyName
	}
	data.layout = h.layout(r, title)
	h.render(w, r, http.StatusOK, "view", data)
}

// Edit is the edit entry point; editing happens outside the console.
func (h *Handlers) Edit(w http.ResponseWriter, r *http.Request) {
	short := urlParam(r, "short")
	h.render(w, r, http.StatusOK, "edit", messagePage{
		layout:  h.layout(r, "Edit partner"),
		Heading: "Edit " + short,
		Message: "Editing partner details is not available in the console yet. The profile below is read-only.",
		BackURL: viewPath(short),
	})
}
