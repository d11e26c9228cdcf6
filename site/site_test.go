package site

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/ai"
	"portfolio/config"
	"portfolio/constants"
	"portfolio/content"
	"portfolio/database"
	"portfolio/deadletter"
	"portfolio/i18n"
	"portfolio/logger"
	"portfolio/storage"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "correct horse"
)

type fakeChat struct {
	lastMessage string
	lastHistory []ai.Message
}

func (f *fakeChat) Chat(ctx context.Context, message string, history []ai.Message) string {
	f.lastMessage = message
	f.lastHistory = history
	return "Shihab builds n8n workflows."
}

type slowTranslator struct {
	release chan struct{}
}

func (t *slowTranslator) Translate(ctx context.Context, title, body string, target i18n.Language) (ai.Translation, error) {
	<-t.release
	return ai.Translation{Title: "অনুবাদিত " + title, Body: "অনুবাদিত লেখা"}, nil
}

type discardWriter struct{}

func (discardWriter) Enqueue(id int64, fields map[string]any) {}

type testSite struct {
	router   chi.Router
	posts    *database.PostStore
	engine   *content.Engine
	chat     *fakeChat
	activity *content.Activity
	uploads  string
}

type siteOption func(opts *Options)

func newTestSite(t *testing.T, options ...siteOption) *testSite {
	t.Helper()
	ctx := context.Background()
	log := logger.Discard()
	dir := t.TempDir()

	db, err := database.Open("sqlite", filepath.Join(dir, "site.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	posts := database.NewPostStore(db)
	admins := database.NewAdminStore(db)
	require.NoError(t, admins.EnsureAdmin(ctx, adminEmail, adminPassword))

	images, err := storage.NewLocalStore(filepath.Join(dir, "uploads"), "/uploads")
	require.NoError(t, err)

	deadLetters, err := deadletter.Open(filepath.Join(dir, "deadletter.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = deadLetters.Close() })

	engine, err := content.NewEngine(posts, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	cfg := &config.Config{}
	cfg.Server.Debug = true

	chat := &fakeChat{}
	activity := content.NewActivity()
	opts := Options{
		Config:        cfg,
		Engine:        engine,
		Manager:       content.NewManager(posts, images, engine, log),
		Resolver:      content.NewResolver(posts, log),
		Admins:        admins,
		Chat:          chat,
		DeadLetters:   deadLetters,
		Activity:      activity,
		Uploads:       images.Handler(),
		UploadsPrefix: images.URLPrefix(),
		Logger:        log,
	}
	for _, o := range options {
		o(&opts)
	}

	return &testSite{
		router:   New(opts).Routes(),
		posts:    posts,
		engine:   engine,
		chat:     chat,
		activity: activity,
		uploads:  filepath.Join(dir, "uploads"),
	}
}

func (ts *testSite) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testSite) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return ts.do(req)
}

func (ts *testSite) insert(t *testing.T, p database.Post) int64 {
	t.Helper()
	id, err := ts.posts.InsertPost(context.Background(), &p)
	require.NoError(t, err)
	return id
}

func (ts *testSite) signIn(t *testing.T) *http.Cookie {
	t.Helper()
	form := url.Values{"email": {"  ADMIN@example.com "}, "password": {adminPassword + " "}}
	req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := ts.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))

	for _, c := range rec.Result().Cookies() {
		if c.Name == string(AuthenticatedUserTokenCookieName) {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func bengali() *http.Cookie {
	return &http.Cookie{Name: constants.LANG_COOKIE_NAME, Value: "bn"}
}

func TestHome_EmptyStoreShowsSamplePosts(t *testing.T) {
	ts := newTestSite(t)

	rec := ts.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, i18n.For(i18n.English).EmptyStore)
	assert.Contains(t, body, "Automating Customer Support with Gemini")
	assert.NotContains(t, body, "Building Autonomous Agents with n8n", "only the latest three")
}

func TestHome_LatestPostsInVisitorLanguage(t *testing.T) {
	ts := newTestSite(t)
	ts.insert(t, database.Post{Title: "First automation", Body: "Body one"})
	ts.insert(t, database.Post{Title: "Second automation", Body: "Body two", TitleAlt: "দ্বিতীয় অটোমেশন", BodyAlt: "দ্বিতীয় লেখা"})

	body := ts.get("/").Body.String()
	assert.Contains(t, body, "Second automation")
	assert.NotContains(t, body, i18n.For(i18n.English).EmptyStore)

	body = ts.get("/", bengali()).Body.String()
	assert.Contains(t, body, "দ্বিতীয় অটোমেশন")
	assert.Contains(t, body, "First automation", "untranslated posts show the source text")
	assert.Contains(t, body, `lang="bn"`)
}

func TestSwitchLanguage(t *testing.T) {
	ts := newTestSite(t)

	rec := ts.get("/lang/bn?next=" + url.QueryEscape("/blog?q=n8n"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/blog?q=n8n", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "bn", cookies[0].Value)
	assert.Zero(t, cookies[0].MaxAge, "session cookie")
	assert.True(t, cookies[0].Expires.IsZero())

	rec = ts.get("/lang/en?next=" + url.QueryEscape("//evil.example.com"))
	assert.Equal(t, "/", rec.Header().Get("Location"))

	assert.Equal(t, http.StatusBadRequest, ts.get("/lang/fr").Code)
}

func TestPublicViewPost(t *testing.T) {
	ts := newTestSite(t)
	id := ts.insert(t, database.Post{Title: "Webhook triggers", Body: "Use **JSON** parsing", Category: "Automation"})

	rec := ts.get("/post/" + jsonNumber(id))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>JSON</strong>")
	assert.NotContains(t, rec.Body.String(), i18n.For(i18n.English).DemoBadge)

	rec = ts.get("/?post=" + jsonNumber(id))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Webhook triggers")

	rec = ts.get("/post/424242")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), i18n.For(i18n.English).PostNotFound)

	assert.Equal(t, http.StatusNotFound, ts.get("/post/abc").Code)
}

func TestPublicViewPost_SamplePostWhileStoreEmpty(t *testing.T) {
	ts := newTestSite(t)

	rec := ts.get("/post/102")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "The Rise of Vibe Coding")
	assert.Contains(t, rec.Body.String(), i18n.For(i18n.English).DemoBadge)
}

func TestArchiveSearch(t *testing.T) {
	ts := newTestSite(t)
	ts.insert(t, database.Post{Title: "Webhook triggers", Body: "n8n workflows"})
	ts.insert(t, database.Post{Title: "Gemini chatbots", Body: "Support with knowledge bases"})

	body := ts.get("/blog").Body.String()
	assert.Contains(t, body, "Webhook triggers")
	assert.Contains(t, body, "Gemini chatbots")

	body = ts.get("/blog?q=chatbots").Body.String()
	assert.Contains(t, body, "Gemini chatbots")
	assert.NotContains(t, body, "Webhook triggers")

	body = ts.get("/blog?q=kubernetes").Body.String()
	assert.Contains(t, body, i18n.For(i18n.English).NoResults)
}

func TestDashboardRequiresSignIn(t *testing.T) {
	ts := newTestSite(t)

	rec := ts.get("/dashboard/")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/signin", rec.Header().Get("Location"))

	rec = ts.get("/dashboard/", &http.Cookie{Name: string(AuthenticatedUserTokenCookieName), Value: "forged"})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestSignIn(t *testing.T) {
	ts := newTestSite(t)

	form := url.Values{"email": {adminEmail}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := ts.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")

	session := ts.signIn(t)
	assert.True(t, ts.activity.Active(time.Minute))

	rec = ts.get("/dashboard/", session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), adminEmail)

	rec = ts.get("/signin", session)
	assert.Equal(t, http.StatusSeeOther, rec.Code, "already signed in")

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(session)
	rec = ts.do(req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	assert.Equal(t, http.StatusSeeOther, ts.get("/dashboard/", session).Code, "session ended")
}

func multipartPost(t *testing.T, path string, fields map[string]string, filename string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCreateEditDeletePost(t *testing.T) {
	ts := newTestSite(t)
	session := ts.signIn(t)

	req := multipartPost(t, "/dashboard/post/new", map[string]string{
		"title":    "Agents with n8n",
		"excerpt":  "Chain agents together.",
		"category": "",
	}, "Diagram.PNG", []byte("fake png"))
	req.AddCookie(session)
	rec := ts.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/dashboard?saved="))

	posts, err := ts.posts.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	created := posts[0]
	assert.Equal(t, constants.DEFAULT_CATEGORY, created.Category)
	assert.True(t, strings.HasPrefix(created.ImageURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(created.ImageURL, "-diagram.png"))

	rec = ts.get(created.ImageURL)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fake png", rec.Body.String())

	_, cached := ts.engine.Get(created.ID)
	assert.True(t, cached, "cache reloaded after save")

	id := jsonNumber(created.ID)
	rec = ts.get("/dashboard/post/"+id, session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Agents with n8n")

	req = multipartPost(t, "/dashboard/post/"+id, map[string]string{
		"title":     "Agents with n8n, revised",
		"excerpt":   "Chain agents together.",
		"category":  "Automation",
		"image_url": created.ImageURL,
	}, "", nil)
	req.AddCookie(session)
	rec = ts.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	updated, err := ts.posts.GetPost(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Agents with n8n, revised", updated.Title)
	assert.Equal(t, created.ImageURL, updated.ImageURL)

	rec = ts.get("/dashboard/post/"+id+"/delete", session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "permanently")

	req = httptest.NewRequest(http.MethodPost, "/dashboard/post/"+id+"/delete", nil)
	req.AddCookie(session)
	rec = ts.do(req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	_, cached = ts.engine.Get(created.ID)
	assert.False(t, cached)
	_, err = os.Stat(filepath.Join(ts.uploads, filepath.Base(created.ImageURL)))
	assert.True(t, os.IsNotExist(err), "image removed")

	req = httptest.NewRequest(http.MethodPost, "/dashboard/post/"+id+"/delete", nil)
	req.AddCookie(session)
	assert.Equal(t, http.StatusNotFound, ts.do(req).Code)
}

func TestCreatePost_Validation(t *testing.T) {
	ts := newTestSite(t)
	session := ts.signIn(t)

	req := multipartPost(t, "/dashboard/post/new", map[string]string{"title": "  ", "excerpt": "body"}, "x.png", []byte("x"))
	req.AddCookie(session)
	rec := ts.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), content.ErrTitleRequired.Error())

	posts, err := ts.posts.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)

	entries, err := os.ReadDir(ts.uploads)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing uploaded")
}

func TestTranslatingBadge(t *testing.T) {
	translator := &slowTranslator{release: make(chan struct{})}
	var orchestrator *content.Orchestrator
	ts := newTestSite(t, func(opts *Options) {
		orchestrator = content.NewOrchestrator(opts.Engine, translator, discardWriter{}, 1, time.Minute, logger.Discard())
		opts.Orchestrator = orchestrator
	})
	id := ts.insert(t, database.Post{Title: "Webhook triggers", Body: "n8n workflows"})

	body := ts.get("/", bengali()).Body.String()
	assert.Contains(t, body, i18n.For(i18n.Bengali).Translating)
	assert.Contains(t, body, "Webhook triggers")

	close(translator.release)
	orchestrator.Wait()

	p, ok := ts.engine.Get(id)
	require.True(t, ok)
	assert.Equal(t, "অনুবাদিত Webhook triggers", p.TitleAlt)
}

func TestAPIChat(t *testing.T) {
	ts := newTestSite(t)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return ts.do(req)
	}

	rec := post(`{"message": "  shs panel "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ActionAdminLogin, resp.Action)
	assert.Empty(t, ts.chat.lastMessage, "admin command never reaches the model")

	rec = post(`{"message": "What do you build?", "history": [{"role": "model", "text": "Hello!"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = chatResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Shihab builds n8n workflows.", resp.Reply)
	assert.Equal(t, "What do you build?", ts.chat.lastMessage)
	assert.Len(t, ts.chat.lastHistory, 1)

	assert.Equal(t, http.StatusBadRequest, post(`{"message": "   "}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`not json`).Code)
}

func TestAPIPosts(t *testing.T) {
	ts := newTestSite(t)

	rec := ts.get("/api/v1/posts")
	require.Equal(t, http.StatusOK, rec.Code)
	var list postsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.True(t, list.UsingDemo)
	assert.True(t, list.Empty)
	assert.Len(t, list.Posts, 4)

	id := ts.insert(t, database.Post{Title: "Fresh", Body: "Body"})

	rec = ts.get("/api/v1/posts/" + jsonNumber(id))
	require.Equal(t, http.StatusOK, rec.Code)
	var one postResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &one))
	assert.Equal(t, "Fresh", one.Post.Title)
	assert.False(t, one.Demo)

	assert.Equal(t, http.StatusNotFound, ts.get("/api/v1/posts/999").Code)
}

func jsonNumber(id int64) string {
	return strconv.FormatInt(id, 10)
}
