package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

const languageCookie = "lang"

type languageCtxKey struct{}

// Language negotiates the console language from, in order, the lang query
// parameter, the lang cookie and the Accept-Language header. The first
// supported tag is the fallback. An explicit ?lang= choice is remembered
// in the cookie.
func Language(supported []string) func(http.Handler) http.Handler {
	var tags []language.Tag
	for _, s := range supported {
		if tag, err := language.Parse(s); err == nil {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		tags = []language.Tag{language.AmericanEnglish}
	}
	matcher := language.NewMatcher(tags)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query().Get(languageCookie)
			var cookie string
			if c, err := r.Cookie(languageCookie); err == nil {
				cookie = c.Value
			}

			tag, ok := match(matcher, tags, query)
			if ok {
				http.SetCookie(w, &http.Cookie{
					Name:     languageCookie,
					Value:    tag.String(),
					Path:     "/",
					MaxAge:   365 * 24 * 60 * 60,
					SameSite: http.SameSiteLaxMode,
				})
			} else if tag, ok = match(matcher, tags, cookie); !ok {
				if tag, ok = match(matcher, tags, r.Header.Get("Accept-Language")); !ok {
					tag = tags[0]
				}
			}

			ctx := context.WithValue(r.Context(), languageCtxKey{}, tag.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// match returns the supported tag best matching an Accept-Language style
// value.
func match(m language.Matcher, tags []language.Tag, value string) (language.Tag, bool) {
	if value == "" {
		return language.Und, false
	}
	desired, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(desired) == 0 {
		return language.Und, false
	}
	_, idx, conf := m.Match(desired...)
	if conf == language.No {
		return language.Und, false
	}
	return tags[idx], true
}

// LanguageFromContext returns the negotiated language tag, or "" when the
// Language middleware did not run.
func LanguageFromContext(ctx context.Context) string {
	lang, _ := ctx.Value(languageCtxKey{}).(string)
	return lang
}
