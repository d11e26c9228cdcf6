package site

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"portfolio/constants"
	"portfolio/i18n"
)

func languageOf(r *http.Request) i18n.Language {
	cookie, err := r.Cookie(constants.LANG_COOKIE_NAME)
	if err != nil {
		return i18n.Primary
	}
	return i18n.Parse(cookie.Value)
}

// SwitchLanguage stores the chosen language for the browser session and
// sends the visitor back.
func (s *Site) SwitchLanguage(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !i18n.Valid(code) {
		http.Error(w, "Unsupported language", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constants.LANG_COOKIE_NAME,
		Value:    code,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, safeRedirect(r.URL.Query().Get("next")), http.StatusSeeOther)
}

// safeRedirect only allows paths on this site.
func safeRedirect(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
