package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func multipartUpload(t *testing.T, field string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, writer.FormDataContentType()
}

func postUpload(router *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/avatar", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadAvatar_Success(t *testing.T) {
	avatars := &stubAvatarService{
		uploadFn: func(_ context.Context, userID string, _ multipart.File, header *multipart.FileHeader) (string, error) {
			if userID != "user-1" {
				t.Errorf("userID = %q", userID)
			}
			if header.Filename != "me.png" {
				t.Errorf("filename = %q", header.Filename)
			}
			return "https://storage.test/kudos-avatars/user-1/x.png", nil
		},
	}
	h := HandlerSet{log: zerolog.Nop(), sessions: testSessions(), avatars: avatars}
	router := newTestRouter("user-1", http.MethodPost, "/avatar", h.UploadAvatar)

	body, contentType := multipartUpload(t, "profile-pic", "me.png", []byte("fake-png-bytes"))
	w := postUpload(router, body, contentType)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if resp := decodeJSON(t, w); resp["imageUrl"] != "https://storage.test/kudos-avatars/user-1/x.png" {
		t.Errorf("body = %v", resp)
	}
}

func TestUploadAvatar_MissingFieldIsNonFatalError(t *testing.T) {
	h := HandlerSet{log: zerolog.Nop(), sessions: testSessions(), avatars: &stubAvatarService{}}
	router := newTestRouter("user-1", http.MethodPost, "/avatar", h.UploadAvatar)

	body, contentType := multipartUpload(t, "wrong-field", "me.png", []byte("bytes"))
	w := postUpload(router, body, contentType)

	// Upload failures never use an HTTP error status.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if resp := decodeJSON(t, w); resp["errorMsg"] == nil {
		t.Errorf("expected errorMsg, got %v", resp)
	}
}

func TestUploadAvatar_StorageFailure(t *testing.T) {
	avatars := &stubAvatarService{
		uploadFn: func(context.Context, string, multipart.File, *multipart.FileHeader) (string, error) {
			return "", errors.New("bucket unreachable")
		},
	}
	h := HandlerSet{log: zerolog.Nop(), sessions: testSessions(), avatars: avatars}
	router := newTestRouter("user-1", http.MethodPost, "/avatar", h.UploadAvatar)

	body, contentType := multipartUpload(t, "profile-pic", "me.png", []byte("bytes"))
	w := postUpload(router, body, contentType)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if resp := decodeJSON(t, w); resp["errorMsg"] == nil {
		t.Errorf("expected errorMsg, got %v", resp)
	}
}
