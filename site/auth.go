package site

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"portfolio/database"
	"portfolio/templates"
)

type AdminCookieName string

const AuthenticatedUserCookieName = AdminCookieName("authenticated_user")
const AuthenticatedUserTokenCookieName = AdminCookieName("authenticated_user_token")

func getSignedInUserOrNil(r *http.Request) *database.AdminUser {
	adminUser, _ := r.Context().Value(AuthenticatedUserCookieName).(*database.AdminUser)
	return adminUser
}

func generateAuthToken() (string, error) {
	const tokenLength = 32
	tokenBytes := make([]byte, tokenLength)
	_, err := rand.Read(tokenBytes)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(tokenBytes), nil
}

func setSessionCookie(w http.ResponseWriter, token string, secure bool) {
	cookie := &http.Cookie{
		Name:     string(AuthenticatedUserTokenCookieName),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if token == "" {
		cookie.MaxAge = -1
	}
	http.SetCookie(w, cookie)
}

func (s *Site) TryPutUserInContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(string(AuthenticatedUserTokenCookieName))
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.admins.BySession(r.Context(), cookie.Value)
		if err != nil {
			// Clear the invalid cookie
			setSessionCookie(w, "", s.secureCookies)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), AuthenticatedUserCookieName, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func AuthProtectedMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if getSignedInUserOrNil(r) == nil {
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminActivityMiddleware marks the admin as present so the poller keeps the
// cache in step while they work.
func (s *Site) AdminActivityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if getSignedInUserOrNil(r) != nil {
			s.activity.Touch()
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Site) UserSignIn(w http.ResponseWriter, r *http.Request) {
	props := s.layoutProps(r, "Sign in")

	if r.Method == http.MethodGet {
		if getSignedInUserOrNil(r) != nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		s.Render(w, r, http.StatusOK, templates.SignInPage(props, "", ""))
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	token, err := generateAuthToken()
	if err != nil {
		s.logger.Error("session token generation failed", "error", err)
		http.Error(w, "Error signing in", http.StatusInternalServerError)
		return
	}

	admin, err := s.admins.Authenticate(r.Context(), email, password, token)
	if err != nil {
		if errors.Is(err, database.ErrInvalidCredentials) {
			s.logger.Info("admin sign in rejected")
			s.Render(w, r, http.StatusUnauthorized, templates.SignInPage(props, email, "Invalid email or password"))
			return
		}
		s.logger.Error("admin sign in failed", "error", err)
		http.Error(w, "Error signing in", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, token, s.secureCookies)
	s.activity.Touch()
	s.logger.Info("admin signed in", "email", admin.Email)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Site) UserLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(string(AuthenticatedUserTokenCookieName)); err == nil {
		if err := s.admins.EndSession(r.Context(), cookie.Value); err != nil {
			s.logger.Warn("end session failed", "error", err)
		}
	}
	setSessionCookie(w, "", s.secureCookies)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
