package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/sigstudio/internal/editor"
	"github.com/ByLCY/sigstudio/internal/logging"
	"github.com/ByLCY/sigstudio/internal/store"
	"github.com/ByLCY/sigstudio/signature"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := logging.Discard()
	ed := editor.New(store.NewRepository(store.NewMemory(), log), editor.Options{Logger: log, LogoMaxBytes: 1 << 20})
	require.NoError(t, ed.Open(context.Background()))
	return New(ed, log, 1<<20)
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthzAndRequestID(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-Id"))
}

func TestProfileEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/profiles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Profiles []signature.Config `json:"profiles"`
	}](t, w)
	require.Len(t, list.Profiles, 1)
	assert.Equal(t, "default", list.Profiles[0].ID)

	w = do(t, s, http.MethodPost, "/api/profiles", map[string]string{"name": "Agence"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[signature.Config](t, w)
	assert.Equal(t, "Agence", created.ProfileName)
	assert.NotEmpty(t, created.ID)

	w = do(t, s, http.MethodPost, "/api/profiles", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, editor.DefaultNewProfileName, decode[signature.Config](t, w).ProfileName)

	created.FullName = "Sarah Dupont"
	w = do(t, s, http.MethodPut, "/api/profiles/"+created.ID, created)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sarah Dupont", decode[signature.Config](t, w).FullName)

	w = do(t, s, http.MethodGet, "/api/profiles/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sarah Dupont", decode[signature.Config](t, w).FullName)

	w = do(t, s, http.MethodGet, "/api/profiles/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "profile_not_found", decode[ErrorResponse](t, w).Error.Code)
}

func TestDeleteLastProfileConflicts(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodDelete, "/api/profiles/default", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "last_profile", decode[ErrorResponse](t, w).Error.Code)

	w = do(t, s, http.MethodPost, "/api/profiles", map[string]string{"name": "B"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(t, s, http.MethodDelete, "/api/profiles/default", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPreview(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/profiles/default/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "mailto:trk@homty.be")

	w = do(t, s, http.MethodGet, "/api/profiles/default/preview?format=svg", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")

	w = do(t, s, http.MethodGet, "/api/profiles/default/preview?format=docx", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_format", decode[ErrorResponse](t, w).Error.Code)
}

func TestLayoutTree(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/profiles/default/layout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tree := decode[map[string]any](t, w)
	assert.NotEmpty(t, tree)
}

func TestCopy(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/profiles/default/copy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[copyResponse](t, w)
	assert.Contains(t, out.HTML, "mailto:trk@homty.be")
	assert.True(t, strings.HasPrefix(out.Text, "Tarek Ben Bachir\n"))

	cfg := signature.Default()
	cfg.ID = "default"
	cfg.Content = signature.Content{}
	w = do(t, s, http.MethodPut, "/api/profiles/default", cfg)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, s, http.MethodPost, "/api/profiles/default/copy", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "nothing_to_copy", decode[ErrorResponse](t, w).Error.Code)
}

func uploadLogo(t *testing.T, s *Server, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/profiles/default/logo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestUploadLogo(t *testing.T) {
	s := newTestServer(t)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 8, 4))))
	w := uploadLogo(t, s, "logo.png", img.Bytes())
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(decode[signature.Config](t, w).LogoURL, "data:image/png;base64,"))

	w = uploadLogo(t, s, "notes.txt", []byte("plain text"))
	require.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Equal(t, "invalid_logo", decode[ErrorResponse](t, w).Error.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/profiles/default/logo", strings.NewReader(""))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/suggest", map[string]string{"businessType": "agence immobilière"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Vente - Location - Gestion - Syndic", decode[map[string]string](t, w)["footerServices"])

	w = do(t, s, http.MethodPost, "/api/suggest", map[string]string{"businessType": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/profiles/default/footer", map[string]string{"businessType": "syndic"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Vente - Location - Gestion - Syndic", decode[signature.Config](t, w).FooterServices)
}

func TestLayoutEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/layouts", map[string]string{"profileId": "default", "name": "Mon style"})
	require.Equal(t, http.StatusCreated, w.Code)
	saved := decode[signature.Layout](t, w)
	assert.Equal(t, "Mon style", saved.Name)

	w = do(t, s, http.MethodPost, "/api/layouts", map[string]string{"profileId": "default"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/api/layouts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[map[string][]signature.Layout](t, w)["layouts"], 1)

	w = do(t, s, http.MethodPost, "/api/profiles/default/layouts/"+saved.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodPost, "/api/profiles/default/layouts/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "layout_not_found", decode[ErrorResponse](t, w).Error.Code)

	w = do(t, s, http.MethodDelete, "/api/layouts/"+saved.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, s, http.MethodDelete, "/api/layouts/"+saved.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPresetEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/presets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[map[string][]signature.Layout](t, w)["presets"], 3)

	w = do(t, s, http.MethodPost, "/api/profiles/default/presets/classic", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, signature.LogoTop, decode[signature.Config](t, w).LayoutMode)

	w = do(t, s, http.MethodPost, "/api/profiles/default/presets/rococo", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
