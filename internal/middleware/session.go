package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Strob0t/PartnerConsole/internal/domain/session"
	"github.com/Strob0t/PartnerConsole/internal/logger"
	"github.com/Strob0t/PartnerConsole/internal/service"
)

// SessionCookie configures the session cookie.
type SessionCookie struct {
	Name   string
	Secure bool
}

type sessionCtxKey struct{}

// sessionState is the per-request session bookkeeping.
type sessionState struct {
	sess     *session.Session
	snapshot []byte
	fresh    bool
	ended    bool
	once     sync.Once
}

// Session loads the console session named by the cookie, or starts a new
// one, and stores it in the request context. The session is written back
// once, before the first byte of the response, if it is new or changed.
func Session(svc *service.SessionService, cookie SessionCookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var value string
			if c, err := r.Cookie(cookie.Name); err == nil {
				value = c.Value
			}

			sess, token, fresh, err := svc.Load(r.Context(), value)
			if err != nil {
				logger.From(r.Context()).Error("load session", "error", err)
				http.Error(w, "session unavailable", http.StatusInternalServerError)
				return
			}
			if fresh {
				setSessionCookie(w, svc, cookie, token)
			}

			st := &sessionState{sess: sess, fresh: fresh}
			st.snapshot, _ = json.Marshal(sess)

			save := func() {
				st.once.Do(func() { persist(r.Context(), svc, st) })
			}
			sw := &sessionWriter{ResponseWriter: w, before: save}
			ctx := context.WithValue(r.Context(), sessionCtxKey{}, st)
			next.ServeHTTP(sw, r.WithContext(ctx))
			save()
		})
	}
}

func persist(ctx context.Context, svc *service.SessionService, st *sessionState) {
	if st.ended {
		return
	}
	current, err := json.Marshal(st.sess)
	if err != nil {
		logger.From(ctx).Error("encode session", "error", err)
		return
	}
	if !st.fresh && bytes.Equal(current, st.snapshot) {
		return
	}
	if err := svc.Save(ctx, st.sess); err != nil {
		logger.From(ctx).Error("save session", "session_id", st.sess.ID, "error", err)
	}
}

// SessionFromContext returns the request's console session, or nil.
func SessionFromContext(ctx context.Context) *session.Session {
	if st, ok := ctx.Value(sessionCtxKey{}).(*sessionState); ok {
		return st.sess
	}
	return nil
}

// RenewSession moves the request's session to a new id and cookie, so an id
// seen before login is useless afterwards. Call it before writing the
// response.
func RenewSession(w http.ResponseWriter, r *http.Request, svc *service.SessionService, cookie SessionCookie) error {
	st, ok := r.Context().Value(sessionCtxKey{}).(*sessionState)
	if !ok {
		return nil
	}
	id, token, err := svc.Renew(r.Context(), st.sess.ID)
	if err != nil {
		return err
	}
	st.sess.ID = id
	st.fresh = true
	setSessionCookie(w, svc, cookie, token)
	return nil
}

// EndSession destroys the request's session and expires its cookie. The
// session is not written back afterwards.
func EndSession(w http.ResponseWriter, r *http.Request, svc *service.SessionService, cookieName string) {
	st, ok := r.Context().Value(sessionCtxKey{}).(*sessionState)
	if !ok {
		return
	}
	st.ended = true
	if err := svc.Destroy(r.Context(), st.sess.ID); err != nil {
		logger.From(r.Context()).Error("destroy session", "session_id", st.sess.ID, "error", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func setSessionCookie(w http.ResponseWriter, svc *service.SessionService, cookie SessionCookie, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(svc.TTL() / time.Second),
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionWriter runs before ahead of the first header or body write.
type sessionWriter struct {
	http.ResponseWriter
	before func()
}

func (w *sessionWriter) WriteHeader(code int) {
	w.before()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.before()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
