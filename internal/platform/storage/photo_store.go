package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

const (
	profileSubdir = "profiles"
	postSubdir    = "posts"
)

// allowedExtensions is the image-type allow-list for uploaded photos.
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// PhotoStore persists uploaded photos on the local filesystem under a single
// root directory, with profiles/ and posts/ subdirectories.
type PhotoStore struct {
	root        string
	maxFileSize int64
}

// NewPhotoStore creates the upload directories if they do not exist.
func NewPhotoStore(root string, maxFileSize int64) (*PhotoStore, error) {
	for _, dir := range []string{profileSubdir, postSubdir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
		}
	}
	return &PhotoStore{root: root, maxFileSize: maxFileSize}, nil
}

// SaveProfilePicture stores an uploaded profile picture for the given user and
// returns its normalized relative path.
func (s *PhotoStore) SaveProfilePicture(userID string, file *multipart.FileHeader) (string, error) {
	filename := fmt.Sprintf("%s-%s", userID, filepath.Base(file.Filename))
	return s.save(profileSubdir, filename, file)
}

// SavePostPhotos stores the uploaded photos for a post. If any file fails to
// save, the ones already written are removed so no orphan remains.
func (s *PhotoStore) SavePostPhotos(postID string, files []*multipart.FileHeader) ([]string, error) {
	saved := make([]string, 0, len(files))
	for _, file := range files {
		filename := fmt.Sprintf("%s-%s", postID, filepath.Base(file.Filename))
		path, err := s.save(postSubdir, filename, file)
		if err != nil {
			s.RemoveAll(saved)
			return nil, err
		}
		saved = append(saved, path)
	}
	return saved, nil
}

func (s *PhotoStore) save(subdir, filename string, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("file type %q not allowed", ext)
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", s.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	fullPath := filepath.Join(s.root, subdir, filename)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	return normalizePath(fullPath), nil
}

// Remove deletes a stored file. A missing file is not an error: compensation
// paths may race with each other.
func (s *PhotoStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(filepath.FromSlash(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file %s: %w", path, err)
	}
	return nil
}

// RemoveAll deletes every path, continuing past individual failures.
func (s *PhotoStore) RemoveAll(paths []string) {
	for _, path := range paths {
		_ = s.Remove(path)
	}
}

// normalizePath makes stored paths use forward slashes regardless of OS.
func normalizePath(path string) string {
	return strings.ReplaceAll(path, string(os.PathSeparator), "/")
}
