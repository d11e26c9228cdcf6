package site

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"portfolio/constants"
	"portfolio/content"
	"portfolio/database"
	"portfolio/i18n"
	"portfolio/templates"
)

// observe tells the orchestrator which language is being read.
func (s *Site) observe(r *http.Request, lang i18n.Language) {
	if s.orchestrator != nil {
		s.orchestrator.Observe(r.Context(), lang)
	}
}

func (s *Site) postView(p database.Post, lang i18n.Language) templates.PostView {
	text := content.SelectDisplayText(p, lang)
	return templates.PostView{
		ID:          p.ID,
		Title:       text.Title,
		Body:        text.Body,
		Category:    p.Category,
		Date:        p.PublishedDate,
		ImageURL:    p.ImageURL,
		Translating: s.orchestrator != nil && s.orchestrator.InFlight(lang, p.ID),
	}
}

func (s *Site) listProps(snap content.Snapshot, posts []database.Post, lang i18n.Language, query string) templates.ListProps {
	strs := i18n.For(lang)
	list := templates.ListProps{Loading: snap.Loading, Query: query}
	if snap.UsingDemo {
		list.Notice = strs.DemoMode
		if snap.Empty {
			list.Notice = strs.EmptyStore
		}
	}
	for _, p := range posts {
		list.Posts = append(list.Posts, s.postView(p, lang))
	}
	return list
}

func parsePostID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *Site) Home(w http.ResponseWriter, r *http.Request) {
	s.engine.EnsureFresh(r.Context(), s.maxAge)
	lang := languageOf(r)

	// deep link to a single post
	if raw := r.URL.Query().Get("post"); raw != "" {
		s.renderPost(w, r, raw)
		return
	}

	snap := s.engine.Snapshot()
	posts := snap.Posts
	if len(posts) > constants.HOME_POSTS_TO_SHOW {
		posts = posts[:constants.HOME_POSTS_TO_SHOW]
	}

	s.observe(r, lang)
	s.Render(w, r, http.StatusOK, templates.HomePage(s.layoutProps(r, ""), s.listProps(snap, posts, lang, "")))
}

func (s *Site) Archive(w http.ResponseWriter, r *http.Request) {
	s.engine.EnsureFresh(r.Context(), s.maxAge)
	lang := languageOf(r)
	query := r.URL.Query().Get("q")

	snap := s.engine.Snapshot()
	posts := snap.Posts
	if query != "" {
		posts = s.engine.Search(query)
	}

	s.observe(r, lang)
	props := s.layoutProps(r, i18n.For(lang).ArchiveTitle)
	s.Render(w, r, http.StatusOK, templates.ArchivePage(props, s.listProps(snap, posts, lang, query)))
}

func (s *Site) PublicViewPost(w http.ResponseWriter, r *http.Request) {
	s.engine.EnsureFresh(r.Context(), s.maxAge)
	s.renderPost(w, r, chi.URLParam(r, "postID"))
}

func (s *Site) renderPost(w http.ResponseWriter, r *http.Request, rawID string) {
	lang := languageOf(r)
	props := s.layoutProps(r, i18n.For(lang).PostNotFound)

	id, ok := parsePostID(rawID)
	if !ok {
		s.Render(w, r, http.StatusNotFound, templates.NotFoundPage(props))
		return
	}

	var initial *database.Post
	if p, ok := s.engine.Get(id); ok {
		initial = &p
	}

	res, err := s.resolver.Resolve(r.Context(), id, initial)
	if err != nil {
		s.Render(w, r, http.StatusNotFound, templates.NotFoundPage(props))
		return
	}

	demo := res.Demo || (initial != nil && s.engine.UsingDemo())
	view := s.postView(res.Post, lang)
	props.Title = view.Title

	s.observe(r, lang)
	s.Render(w, r, http.StatusOK, templates.PostPage(props, view, demo))
}

func (s *Site) dashboardProps(r *http.Request) templates.DashboardProps {
	d := s.manager.Dashboard(r.Context())
	props := templates.DashboardProps{
		Posts:       d.Posts,
		Offline:     d.Offline,
		Translating: s.orchestrator != nil,
	}

	switch {
	case r.URL.Query().Has("saved"):
		props.Flash = "Post saved."
	case r.URL.Query().Has("deleted"):
		props.Flash = "Post deleted."
	}

	if s.deadLetters != nil {
		entries, err := s.deadLetters.List(10)
		if err != nil {
			s.logger.Warn("dead letter list failed", "error", err)
		}
		count, _ := s.deadLetters.Count()
		props.DeadLetters = entries
		props.DeadLetterCount = count
	}
	return props
}

func (s *Site) UserPostList(w http.ResponseWriter, r *http.Request) {
	s.Render(w, r, http.StatusOK, templates.DashboardPage(s.layoutProps(r, "Dashboard"), s.dashboardProps(r)))
}

// readDraft parses the post form. The returned cleanup closes the uploaded
// file, if any.
func readDraft(r *http.Request) (content.Draft, *content.Upload, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(constants.MAX_UPLOAD_BYTES); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return content.Draft{}, nil, noop, err
	}

	draft := content.Draft{
		Title:    r.FormValue("title"),
		Body:     r.FormValue("excerpt"),
		Category: r.FormValue("category"),
		ImageURL: r.FormValue("image_url"),
	}

	file, header, err := r.FormFile("image")
	if err != nil || header.Filename == "" {
		return draft, nil, noop, nil
	}

	upload := &content.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	}
	return draft, upload, func() { _ = file.Close() }, nil
}

func (s *Site) savePost(w http.ResponseWriter, r *http.Request, id int64) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MAX_UPLOAD_BYTES+1<<20)

	draft, upload, cleanup, err := readDraft(r)
	defer cleanup()
	if err != nil {
		http.Error(w, "Error reading form: "+err.Error(), http.StatusBadRequest)
		return
	}
	draft.ID = id

	savedID, err := s.manager.Save(r.Context(), draft, upload)
	if err != nil {
		s.renderSaveError(w, r, draft, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/dashboard?saved=%d", savedID), http.StatusSeeOther)
}

func (s *Site) renderSaveError(w http.ResponseWriter, r *http.Request, draft content.Draft, err error) {
	form := templates.PostFormProps{
		Post: database.Post{
			ID:       draft.ID,
			Title:    draft.Title,
			Body:     draft.Body,
			Category: draft.Category,
			ImageURL: draft.ImageURL,
		},
		Error: err.Error(),
	}
	status := http.StatusBadRequest

	switch {
	case errors.Is(err, content.ErrTitleRequired), errors.Is(err, content.ErrBodyRequired), errors.Is(err, content.ErrBodyTooLong):
	case errors.Is(err, content.ErrPostNotFound):
		s.Render(w, r, http.StatusNotFound, templates.NotFoundPage(s.layoutProps(r, "Not found")))
		return
	case errors.Is(err, content.ErrUploadFailed):
		status = http.StatusBadGateway
	case errors.Is(err, content.ErrOffline):
		status = http.StatusServiceUnavailable
		form.Error = "The database is unreachable. Posts cannot be saved right now."
	case database.IsPolicyViolation(err):
		status = http.StatusForbidden
		form.PolicyBlocked = true
		form.Error = ""
	default:
		s.logger.Error("post save failed", "post_id", draft.ID, "error", err)
		status = http.StatusInternalServerError
		form.Error = "Error saving post: " + err.Error()
	}

	s.Render(w, r, status, templates.PostFormPage(s.layoutProps(r, "Edit post"), form))
}

func (s *Site) CreatePost(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.Render(w, r, http.StatusOK, templates.PostFormPage(s.layoutProps(r, "New post"), templates.PostFormProps{}))
	case http.MethodPost:
		s.savePost(w, r, 0)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Site) EditPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(chi.URLParam(r, "postID"))
	if !ok {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		post, err := s.manager.Get(r.Context(), id)
		if err != nil {
			s.renderLookupError(w, r, err)
			return
		}
		s.Render(w, r, http.StatusOK, templates.PostFormPage(s.layoutProps(r, "Edit post"), templates.PostFormProps{Post: post}))
	case http.MethodPost:
		s.savePost(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Site) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(chi.URLParam(r, "postID"))
	if !ok {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		post, err := s.manager.Get(r.Context(), id)
		if err != nil {
			s.renderLookupError(w, r, err)
			return
		}
		s.Render(w, r, http.StatusOK, templates.DeleteConfirmPage(s.layoutProps(r, "Delete post"), post))

	case http.MethodPost:
		err := s.manager.Delete(r.Context(), id)
		if err == nil {
			http.Redirect(w, r, "/dashboard?deleted=1", http.StatusSeeOther)
			return
		}

		props := s.dashboardProps(r)
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, content.ErrPostNotFound):
			status = http.StatusNotFound
			props.Flash = "Post not found."
		case errors.Is(err, content.ErrOffline):
			status = http.StatusServiceUnavailable
		case database.IsPolicyViolation(err):
			status = http.StatusForbidden
			props.PolicyBlocked = true
		default:
			s.logger.Error("post delete failed", "post_id", id, "error", err)
			props.Flash = "Failed to delete: " + err.Error()
		}
		s.Render(w, r, status, templates.DashboardPage(s.layoutProps(r, "Dashboard"), props))

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Site) renderLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, content.ErrPostNotFound) {
		s.Render(w, r, http.StatusNotFound, templates.NotFoundPage(s.layoutProps(r, "Not found")))
		return
	}
	s.logger.Error("post lookup failed", "error", err)
	http.Error(w, "Error loading post", http.StatusInternalServerError)
}
