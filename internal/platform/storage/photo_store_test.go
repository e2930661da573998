package storage_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamarandofir/travelsync_backend/internal/platform/storage"
)

// uploadedFile builds a real *multipart.FileHeader by round-tripping a
// multipart form through an HTTP request.
func uploadedFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := req.FormFile("photo")
	require.NoError(t, err)
	return header
}

func TestPhotoStore_SaveProfilePicture(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewPhotoStore(root, 1024)
	require.NoError(t, err)

	path, err := store.SaveProfilePicture("user-1", uploadedFile(t, "avatar.png", []byte("png-bytes")))
	require.NoError(t, err)

	assert.Contains(t, path, "profiles/")
	assert.Contains(t, path, "user-1-avatar.png")
	data, err := os.ReadFile(filepath.FromSlash(path))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestPhotoStore_RejectsDisallowedExtension(t *testing.T) {
	store, err := storage.NewPhotoStore(t.TempDir(), 1024)
	require.NoError(t, err)

	_, err = store.SaveProfilePicture("user-1", uploadedFile(t, "malware.exe", []byte("nope")))
	assert.Error(t, err)
}

func TestPhotoStore_RejectsOversizedFile(t *testing.T) {
	store, err := storage.NewPhotoStore(t.TempDir(), 4)
	require.NoError(t, err)

	_, err = store.SaveProfilePicture("user-1", uploadedFile(t, "big.jpg", []byte("way too large")))
	assert.Error(t, err)
}

func TestPhotoStore_SavePostPhotosCleansUpOnFailure(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewPhotoStore(root, 1024)
	require.NoError(t, err)

	files := []*multipart.FileHeader{
		uploadedFile(t, "ok.jpg", []byte("fine")),
		uploadedFile(t, "bad.txt", []byte("wrong type")),
	}

	paths, err := store.SavePostPhotos("post-1", files)
	assert.Error(t, err)
	assert.Nil(t, paths)

	// The first file must not be left behind.
	entries, err := os.ReadDir(filepath.Join(root, "posts"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPhotoStore_RemoveMissingFileIsNotAnError(t *testing.T) {
	store, err := storage.NewPhotoStore(t.TempDir(), 1024)
	require.NoError(t, err)

	assert.NoError(t, store.Remove("does/not/exist.png"))
	assert.NoError(t, store.Remove(""))
}
