package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/Strob0t/PartnerConsole/internal/domain/dashboard"
	"github.com/Strob0t/PartnerConsole/internal/domain/onboarding"
	"github.com/Strob0t/PartnerConsole/internal/domain/session"
	"github.com/Strob0t/PartnerConsole/internal/domain/tenant"
	"github.com/Strob0t/PartnerConsole/internal/middleware"
)

// layout is the data shared by every page.
type layout struct {
	Title    string
	Lang     string
	SignedIn bool
	UserName string
	Logo     string
	Flash    *session.Flash
	Year     int
}

// layout builds the page frame for r and consumes the pending flash.
func (h *Handlers) layout(r *http.Request, title string) layout {
	l := layout{
		Title: title,
		Lang:  middleware.LanguageFromContext(r.Context()),
		Year:  h.now().Year(),
	}
	if l.Lang == "" {
		l.Lang = "en-US"
	}
	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		l.SignedIn = sess.Authenticated()
		l.UserName = sess.DisplayName()
		l.Logo = sess.TenantLogo
		l.Flash = sess.TakeFlash()
	}
	return l
}

type loginPage struct {
	layout
	Tenant    string
	Email     string
	Error     string
	SignedOut bool
}

type messagePage struct {
	layout
	Heading string
	Message string
	BackURL string
}

type dashboardPage struct {
	layout
	Query     string
	Page      dashboard.Page
	Stats     dashboard.Stats
	PageSizes []int
	Links     []pageLink
	PrevURL   string
	NextURL   string
	Error     string
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

// dashboardURL is the list URL for a query, page and size.
func dashboardURL(query string, page, size int) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if size != dashboard.DefaultPageSize {
		v.Set("size", strconv.Itoa(size))
	}
	if len(v) == 0 {
		return dashboardPath
	}
	return dashboardPath + "?" + v.Encode()
}

func pageLinks(query string, p dashboard.Page) []pageLink {
	links := make([]pageLink, 0, p.TotalPages)
	for _, n := range p.Pages() {
		links = append(links, pageLink{Number: n, URL: dashboardURL(query, n, p.PageSize), Current: n == p.Page})
	}
	return links
}

type confirmPage struct {
	layout
	Action  string
	Verb    string
	Short   string
	Company string
	Valid   bool
	Warning string
}

type viewPage struct {
	layout
	Short   string
	Tab     tenant.Tab
	Tabs    []tabLink
	Profile tenant.Profile
	Loaded  bool
	Error   string
}

type tabLink struct {
	Label  string
	URL    string
	Active bool
}

func tabLinks(short string, active tenant.Tab) []tabLink {
	links := make([]tabLink, 0, len(tenant.Tabs))
	base := viewPath(short)
	for _, t := range tenant.Tabs {
		u := base
		if t != tenant.TabOverview {
			u += "?tab=" + string(t)
		}
		links = append(links, tabLink{Label: t.Label(), URL: u, Active: t == active})
	}
	return links
}

type wizardPage struct {
	layout
	Step        int
	TotalSteps  int
	StepTitle   string
	Steps       []stepMark
	IsFinal     bool
	Company     []formField
	Admin       []formField
	Directors   []personForm
	UBOs        []personForm
	Documents   []documentSlot
	DocCount    int
	HasPassword bool
	Accept      string
}

type stepMark struct {
	Number int
	Title  string
	Done   bool
	Active bool
}

func stepMarks(d *onboarding.Draft) []stepMark {
	marks := make([]stepMark, 0, onboarding.TotalSteps)
	for i, title := range onboarding.StepTitles {
		n := i + 1
		marks = append(marks, stepMark{Number: n, Title: title, Done: n < d.Step, Active: n == d.Step})
	}
	return marks
}
