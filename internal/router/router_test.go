package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easyfindshub/internal/auth"
	"easyfindshub/internal/config"
	apperrors "easyfindshub/internal/errors"
	"easyfindshub/internal/handler"
	"easyfindshub/internal/model"
	"easyfindshub/internal/preview"
	"easyfindshub/internal/service"
)

type memObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut bool
}

func (m *memObjects) Put(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return assert.AnError
	}
	m.objects[key] = data
	return nil
}

func (m *memObjects) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memObjects) PublicURL(key string) string {
	return "http://cdn.test/bucket/" + key
}

type memArticles struct {
	mu       sync.Mutex
	articles []model.Article
}

func (m *memArticles) Create(_ context.Context, article *model.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.articles = append(m.articles, *article)
	return nil
}

func (m *memArticles) FindByID(_ context.Context, id uuid.UUID) (*model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.articles {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, apperrors.ErrArticleNotFound
}

func (m *memArticles) List(_ context.Context, limit int) ([]model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Article, 0, len(m.articles))
	for i := len(m.articles) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.articles[i])
	}
	return out, nil
}

type testServer struct {
	e        *echo.Echo
	objects  *memObjects
	articles *memArticles
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	objects := &memObjects{objects: make(map[string][]byte)}
	articles := &memArticles{}

	validator := service.NewDraftValidator()
	renderer, err := preview.NewRenderer()
	require.NoError(t, err)
	drafts := service.NewDraftService(validator, service.NewPublishService(objects, articles), renderer)

	authService, err := service.NewAuthService(
		"admin@easyfindshub.com", "admin123",
		auth.NewSessionStore(),
		auth.NewJWTService("test-secret", time.Hour),
		auth.NewTokenStore(nil),
		drafts,
	)
	require.NoError(t, err)

	e := echo.New()
	Register(e, &config.Config{BodyLimit: "1M"}, validator.Validator(), authService, Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Draft:    handler.NewDraftHandler(drafts),
		Articles: handler.NewArticleHandler(service.NewArticleService(articles)),
	})
	return &testServer{e: e, objects: objects, articles: articles}
}

func (s *testServer) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) doJSON(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return s.do(t, method, path, token, body, echo.MIMEApplicationJSON)
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	rec := s.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@easyfindshub.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp handler.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.True(t, resp.Session.IsAdmin)
	return resp.Token
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func fillDraft(t *testing.T, s *testServer, token string) {
	t.Helper()
	rec := s.doJSON(t, http.MethodPatch, "/api/draft", token, map[string]string{
		"title":    "Ten cosy reading nooks",
		"category": "home-decor",
		"excerpt":  "Quiet corners for slow afternoons.",
		"tags":     "a, b ,c",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func stageImage(t *testing.T, s *testServer, token string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "cover.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec := s.do(t, http.MethodPost, "/api/draft/image", token, &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/metrics", "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		status   int
		code     string
	}{
		{name: "bad email", email: "admin", password: "admin123", status: http.StatusBadRequest, code: "INVALID_FORMAT"},
		{name: "short password", email: "admin@easyfindshub.com", password: "12345", status: http.StatusBadRequest, code: "WEAK_CREDENTIAL"},
		{name: "wrong pair", email: "admin@easyfindshub.com", password: "admin124", status: http.StatusUnauthorized, code: "AUTHENTICATION_FAILED"},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": tt.email, "password": tt.password})
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestSecuredRoutesNeedSession(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/me", "/api/draft", "/api/articles"} {
		rec := s.do(t, http.MethodGet, path, "", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Code, path)
	}

	rec := s.do(t, http.MethodGet, "/api/me", "not-a-jwt", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndsSession(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodGet, "/api/me", token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/logout", token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/me", token, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/logout", "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublishFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	fillDraft(t, s, token)
	rec := s.doJSON(t, http.MethodPatch, "/api/draft", token, map[string]string{"title": "Too short"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.doJSON(t, http.MethodPost, "/api/draft/editor", token, map[string]string{
		"command": "set-content",
		"markup":  "<p>Hello <strong>world</strong></p>",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/draft/submit", token, nil, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	verr := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_FAILED", verr.Code)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "title", verr.Fields[0].Field)
	assert.Equal(t, "min", verr.Fields[0].Rule)

	rec = s.doJSON(t, http.MethodPatch, "/api/draft", token, map[string]string{"title": "Ten cosy reading nooks"})
	require.Equal(t, http.StatusOK, rec.Code)
	stageImage(t, s, token)

	rec = s.do(t, http.MethodGet, "/api/draft/preview?wait=true", token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Contains(t, rec.Body.String(), `src="data:image/png;base64,`)
	assert.Contains(t, rec.Body.String(), "<p>Hello <strong>world</strong></p>")

	rec = s.do(t, http.MethodPost, "/api/draft/submit", token, nil, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var article model.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &article))
	assert.Equal(t, []string{"a", "b", "c"}, article.Tags)
	assert.True(t, strings.HasPrefix(article.ImageURL, "http://cdn.test/bucket/articles/"))
	assert.True(t, strings.HasSuffix(article.ImageURL, "-cover.png"))
	assert.Len(t, s.objects.objects, 1)

	rec = s.do(t, http.MethodGet, "/api/draft", token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var state service.DraftState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Empty(t, state.Title)
	assert.Empty(t, state.Content)
	assert.Nil(t, state.StagedImage)

	rec = s.do(t, http.MethodGet, "/api/articles", token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list handler.ArticleListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, article.ID, list.Articles[0].ID)

	rec = s.do(t, http.MethodGet, "/api/articles/"+article.ID.String(), token, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/articles/"+uuid.NewString(), token, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ARTICLE_NOT_FOUND", decodeError(t, rec).Code)
}

func TestPublishWithoutImage(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	fillDraft(t, s, token)

	rec := s.do(t, http.MethodPost, "/api/draft/submit", token, nil, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var article model.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &article))
	assert.Equal(t, "", article.ImageURL)
	assert.Empty(t, s.objects.objects)
}

func TestUploadFailureKeepsDraft(t *testing.T) {
	s := newTestServer(t)
	s.objects.failPut = true
	token := s.login(t)
	fillDraft(t, s, token)
	stageImage(t, s, token)

	rec := s.do(t, http.MethodPost, "/api/draft/submit", token, nil, "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "UPLOAD_FAILED", decodeError(t, rec).Code)
	assert.Empty(t, s.articles.articles)

	rec = s.do(t, http.MethodGet, "/api/draft", token, nil, "")
	var state service.DraftState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "Ten cosy reading nooks", state.Title)
	assert.NotNil(t, state.StagedImage)
}

func TestEditorCommandErrors(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.doJSON(t, http.MethodPost, "/api/draft/editor", token, map[string]string{"command": "explode"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_COMMAND", decodeError(t, rec).Code)

	rec = s.doJSON(t, http.MethodPost, "/api/draft/editor", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeError(t, rec).Code)
}

func TestStageImageRequiresFile(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodPost, "/api/draft/image", token, strings.NewReader(""), echo.MIMEMultipartForm+"; boundary=x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
