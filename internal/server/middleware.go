package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyContactID contextKey = "contact_id"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// LoadSession puts the visitor's contact id in the request context when the
// host site issued a valid session cookie. Visitors without one continue
// anonymously.
func (s *Service) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.config.SessionCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		var contactID int64
		if err := s.cookie.Decode(s.config.SessionCookieName, cookie.Value, &contactID); err != nil {
			s.logger.WithError(err).Warn("failed to decode session cookie")
			next.ServeHTTP(w, r)
			return
		}

		if contactID <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		s.logger.WithField("contact_id", contactID).Debug("session contact")

		ctx := context.WithValue(r.Context(), contextKeyContactID, contactID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EncodeSession produces a session cookie value for contactID, as issued by
// the host site.
func (s *Service) EncodeSession(contactID int64) (string, error) {
	return s.cookie.Encode(s.config.SessionCookieName, contactID)
}

func sessionContactID(ctx context.Context) *int64 {
	contactID, ok := ctx.Value(contextKeyContactID).(int64)
	if !ok {
		return nil
	}
	return &contactID
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			// 301 turns a POST into a GET, 308 keeps the method and body
			status := http.StatusMovedPermanently
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				status = http.StatusPermanentRedirect
			}

			// Preserve query string
			http.Redirect(w, r, newURL.String(), status)
			return
		}

		next.ServeHTTP(w, r)
	})
}
