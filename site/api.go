package site

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"portfolio/ai"
	"portfolio/constants"
	"portfolio/database"
	"portfolio/i18n"
)

const maxChatBytes = 64 << 10

// ActionAdminLogin tells the chat widget to open the sign in page.
const ActionAdminLogin = "admin_login"

type postsResponse struct {
	Posts     []database.Post `json:"posts"`
	UsingDemo bool            `json:"using_demo"`
	Empty     bool            `json:"empty"`
	Loading   bool            `json:"loading"`
}

type postResponse struct {
	Post database.Post `json:"post"`
	Demo bool          `json:"demo"`
}

type chatRequest struct {
	Message string       `json:"message"`
	History []ai.Message `json:"history"`
}

type chatResponse struct {
	Reply  string `json:"reply,omitempty"`
	Action string `json:"action,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Site) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("json encode failed", "error", err)
	}
}

// apiLanguage reads ?lang= and falls back to the language cookie.
func apiLanguage(r *http.Request) i18n.Language {
	if code := r.URL.Query().Get("lang"); i18n.Valid(code) {
		return i18n.Language(code)
	}
	return languageOf(r)
}

func (s *Site) APIListPosts(w http.ResponseWriter, r *http.Request) {
	s.engine.EnsureFresh(r.Context(), s.maxAge)
	snap := s.engine.Snapshot()

	s.observe(r, apiLanguage(r))
	s.writeJSON(w, http.StatusOK, postsResponse{
		Posts:     snap.Posts,
		UsingDemo: snap.UsingDemo,
		Empty:     snap.Empty,
		Loading:   snap.Loading,
	})
}

func (s *Site) APIGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(chi.URLParam(r, "postID"))
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "post not found"})
		return
	}

	var initial *database.Post
	if p, ok := s.engine.Get(id); ok {
		initial = &p
	}

	res, err := s.resolver.Resolve(r.Context(), id, initial)
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "post not found"})
		return
	}

	s.observe(r, apiLanguage(r))
	s.writeJSON(w, http.StatusOK, postResponse{Post: res.Post, Demo: res.Demo})
}

func (s *Site) APIChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBytes)).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	if strings.EqualFold(message, constants.ADMIN_CHAT_COMMAND) {
		s.writeJSON(w, http.StatusOK, chatResponse{Action: ActionAdminLogin})
		return
	}

	reply := s.chat.Chat(r.Context(), message, req.History)
	s.writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
