// Package media stores uploaded images under MEDIA_ROOT, one directory per
// entity, and builds their public URLs.
package media

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/errs"
)

// URLPrefix is where MEDIA_ROOT is served.
const URLPrefix = "/media/"

var allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

type Store struct {
	root string
	now  func() time.Time
}

func NewStore(root string) *Store {
	return &Store{root: root, now: time.Now}
}

func (s *Store) Root() string { return s.root }

// SaveUpload stores the multipart file in field under dir and returns its
// path relative to the media root. No file means an empty path.
func (s *Store) SaveUpload(c *gin.Context, field, dir string) (string, error) {
	file, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", errs.Field(field, "Upload a valid image.")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExt[ext] {
		return "", errs.Field(field, "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}

	saveDir := filepath.Join(s.root, dir)
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}
	name := s.fileName(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(saveDir, name)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return dir + "/" + name, nil
}

// fileName prefixes a timestamp and strips anything unsafe for a path.
func (s *Store) fileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = strings.Trim(unsafeChars.ReplaceAllString(strings.ReplaceAll(base, " ", "_"), ""), ".")
	if base == "" {
		base = "upload"
	}
	return s.now().Format("20060102_150405") + "_" + base + ext
}

// URL returns the public URL of a stored path; empty stays empty.
func URL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "/") {
		return path
	}
	return URLPrefix + path
}
