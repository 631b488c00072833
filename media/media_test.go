package media

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadContext(t *testing.T, field, filename string) *gin.Context {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField("title", "x"))
	require.NoError(t, w.Close())

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", &body)
	c.Request.Header.Set("Content-Type", w.FormDataContentType())
	return c
}

func TestSaveUpload(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC) }

	path, err := s.SaveUpload(uploadContext(t, "image", "trà sen.JPG"), "image", "products")
	require.NoError(t, err)
	assert.Equal(t, "products/20240301_103000_tr_sen.jpg", path)

	data, err := os.ReadFile(filepath.Join(root, path))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
	assert.Equal(t, "/media/products/20240301_103000_tr_sen.jpg", URL(path))
}

func TestSaveUpload_NoFile(t *testing.T) {
	s := NewStore(t.TempDir())
	path, err := s.SaveUpload(uploadContext(t, "image", ""), "image", "raw")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestSaveUpload_URLEncodedForm(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("title=x"))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	path, err := NewStore(t.TempDir()).SaveUpload(c, "image", "raw")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestSaveUpload_RejectsNonImage(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.SaveUpload(uploadContext(t, "image", "notes.txt"), "image", "raw")
	assert.True(t, errs.Is(err, errs.KindValidation))
	assert.Contains(t, errs.FieldErrors(err), "image")
}

func TestURL(t *testing.T) {
	assert.Equal(t, "", URL(""))
	assert.Equal(t, "https://cdn.example/a.png", URL("https://cdn.example/a.png"))
	assert.Equal(t, "/static/img/a.png", URL("/static/img/a.png"))
}
