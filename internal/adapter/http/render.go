package http

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames are the page templates; each is parsed together with the layout.
var pageNames = []string{
	"login", "verify_otp", "logout", "dashboard", "confirm",
	"view", "edit", "wizard", "error",
}

var templateFuncs = template.FuncMap{
	"pathEscape": url.PathEscape,
	"inc":        func(i int) int { return i + 1 },
}

// pages holds the parsed page templates keyed by name.
type pages map[string]*template.Template

func parsePages() (pages, error) {
	out := make(pages, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// render writes page name with data as a full document.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, ok := h.pages[name]
	if !ok {
		slog.Error("unknown page template", "page", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	templ.Handler(templ.FromGoHTML(t, data), templ.WithStatus(status)).ServeHTTP(w, r)
}
