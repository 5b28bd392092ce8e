package handlers

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"kudos/api/internal/middleware"
	"kudos/api/internal/models"
	"kudos/api/internal/repository"
	"kudos/api/internal/service"
	"kudos/api/internal/session"
)

// --- stub services ---

type stubUserService struct {
	getFn    func(ctx context.Context, id string) (models.User, error)
	saveFn   func(ctx context.Context, userID string, input service.SaveProfileInput) error
	deleteFn func(ctx context.Context, userID string) error
}

func (s *stubUserService) Get(ctx context.Context, id string) (models.User, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return models.User{ID: id}, nil
}

func (s *stubUserService) Roster(context.Context, string) ([]models.User, error) {
	return nil, nil
}

func (s *stubUserService) SaveProfile(ctx context.Context, userID string, input service.SaveProfileInput) error {
	if s.saveFn != nil {
		return s.saveFn(ctx, userID, input)
	}
	return nil
}

func (s *stubUserService) Delete(ctx context.Context, userID string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, userID)
	}
	return nil
}

type stubKudoService struct {
	sendFn func(ctx context.Context, input service.SendKudoInput) error
	feedFn func(ctx context.Context, recipientID string, sort models.KudoSort, filter string) ([]models.KudoWithAuthor, error)
}

func (s *stubKudoService) Send(ctx context.Context, input service.SendKudoInput) error {
	if s.sendFn != nil {
		return s.sendFn(ctx, input)
	}
	return nil
}

func (s *stubKudoService) Feed(ctx context.Context, recipientID string, sort models.KudoSort, filter string) ([]models.KudoWithAuthor, error) {
	if s.feedFn != nil {
		return s.feedFn(ctx, recipientID, sort, filter)
	}
	return nil, nil
}

func (s *stubKudoService) Recent(context.Context) ([]models.RecentKudo, error) {
	return nil, nil
}

type stubAvatarService struct {
	uploadFn func(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (string, error)
}

func (s *stubAvatarService) Upload(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (string, error) {
	if s.uploadFn != nil {
		return s.uploadFn(ctx, userID, file, header)
	}
	return "", nil
}

func testSessions() *session.Manager {
	return session.NewManager("test-secret", "kudos_session", time.Hour, false)
}

// newTestRouter wires the handler under test behind a middleware that
// injects the authenticated user id directly.
func newTestRouter(userID string, method string, path string, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		middleware.SetUserID(c, userID)
	}, handler)
	return router
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v\n%s", err, w.Body.String())
	}
	return body
}

// --- POST /home/profile ---

func TestProfileAction_SaveValidRedirectsHome(t *testing.T) {
	var saved service.SaveProfileInput
	users := &stubUserService{
		saveFn: func(_ context.Context, userID string, input service.SaveProfileInput) error {
			if userID != "user-1" {
				t.Errorf("userID = %q", userID)
			}
			saved = input
			return nil
		},
	}
	h := HandlerSet{log: zerolog.Nop(), sessions: testSessions(), users: users}
	router := newTestRouter("user-1", http.MethodPost, "/home/profile", h.ProfileAction)

	w := postForm(router, "/home/profile", url.Values{
		"_action":    {"save"},
		"firstName":  {"Ada"},
		"lastName":   {"Lovelace"},
		"email":      {"ada@example.com"},
		"department": {"ENGINEERING"},
	})

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d (%s)", w.Code, http.StatusFound, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/home" {
		t.Errorf("Location = %q", loc)
	}
	if saved.FirstName != "Ada" || saved.LastName != "Lovelace" || saved.Department != models.DepartmentEngineering {
		t.Errorf("saved input = %+v", saved)
	}
}

func TestProfileAction_SaveEmptyFirstNameReturnsAllErrors(t *testing.T) {
	called := false
	users := &stubUserService{
		saveFn: func(context.Context, string, service.SaveProfileInput) error {
			called = true
			return nil
		},
	}
	h := HandlerSet{log: zerolog.Nop(), sessions: testSessions(), users: users}
	router := newTestRouter("user-1", http.MethodPost, "/home/profile", h.ProfileAction)

	w := postForm(router, "/home/profile", url.Values{
		"_action":    {"save"},
		"firstName":  {""},
		"lastName":   {"Lovelace"},
		"email":      {"bad-email"},
		"department": {"ENGINEERING"},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if called {
		t.Error("validation failure still reached the service")
	}

	body := decodeJSON(t, w)
	errs, _ := body["errors"].(map[string]any)
	if errs["firstName"] == nil || errs["firstName"] == "" {
		t.Errorf("errors.firstName missing: %v", body)
	}
	if errs["email"] == nil {
		t.Errorf("errors.email missing, errors must be reported together: %v", errs)
	}
	fields, _ := body["fields"].(map[string]any)
	if fields["lastName"] != "Lovelace" || fields["email"] != "bad-email" {
		t.Errorf("fields not echoed unchanged: %v", fields)
	}
}

func TestProfileAction_DuplicateEmail(t *testing.T) {
	users := &stubUserService{
		saveFn: func(context.Context, string, service.SaveProfileInput) error {
			return repository.ErrDuplicateEmail
		},
	}
	h := HandlerSet{log: zerolog.Nop(), sessions: testSessions(), users: users}
	router := newTestRouter("user-1", http.MethodPost, "/home/profile", h.ProfileAction)

	w := postForm(router, "/home/profile", url.Values{
		"_action":    {"save"},
		"firstName":  {"Ada"},
		"lastName":   {"Lovelace"},
		"email":      {"taken@example.com"},
		"department": {"HR"},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if body := decodeJSON(t, w); body["error"] != "User already exists with that email" {
		t.Errorf("body = %v", body)
	}
}

func TestProfileAction_DeleteDestroysSessionAndRedirects(t *testing.T) {
	deleted := ""
	users := &stubUserService{
		deleteFn: func(_ context.Context, userID string) error {
			deleted = userID
			return nil
		},
	}
	h := HandlerSet{log: zerolog.Nop(), sessions: testSessions(), users: users}
	router := newTestRouter("user-1", http.MethodPost, "/home/profile", h.ProfileAction)

	w := postForm(router, "/home/profile", url.Values{"_action": {"delete"}})

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q", loc)
	}
	if deleted != "user-1" {
		t.Errorf("deleted = %q", deleted)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 || cookies[0].Value != "" {
		t.Errorf("session cookie not destroyed: %v", cookies)
	}
}

func TestProfileAction_UnknownAction(t *testing.T) {
	h := HandlerSet{log: zerolog.Nop(), sessions: testSessions(), users: &stubUserService{}}
	router := newTestRouter("user-1", http.MethodPost, "/home/profile", h.ProfileAction)

	w := postForm(router, "/home/profile", url.Values{"_action": {"explode"}})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if body := decodeJSON(t, w); body["error"] != "Invalid Form Data" {
		t.Errorf("body = %v", body)
	}
}
