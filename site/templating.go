package site

import (
	"net/http"

	g "github.com/maragudk/gomponents"

	"portfolio/templates"
)

// Render writes a page with the given status code.
func (s *Site) Render(w http.ResponseWriter, r *http.Request, status int, page g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(w); err != nil {
		s.logger.Error("template render failed", "path", r.URL.Path, "error", err)
	}
}

// layoutProps are the values every page needs: the visitor's language, the
// signed in admin and the current path for the language toggle.
func (s *Site) layoutProps(r *http.Request, title string) templates.LayoutProps {
	props := templates.LayoutProps{
		Title: title,
		Lang:  languageOf(r),
		Path:  r.URL.RequestURI(),
	}
	if admin := getSignedInUserOrNil(r); admin != nil {
		props.CurrentAdmin = admin.Email
	}
	return props
}
