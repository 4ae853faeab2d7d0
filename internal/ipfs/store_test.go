package ipfs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStoreUpload(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	require.Equal(t, "local", store.Mode())

	cid, err := store.Upload(context.Background(), []byte("file contents"), "photo.jpg")
	require.NoError(t, err)
	require.NotEmpty(t, cid)
	require.Equal(t, ".jpg", filepath.Ext(cid))

	data, err := os.ReadFile(filepath.Join(dir, cid))
	require.NoError(t, err)
	require.Equal(t, []byte("file contents"), data)
}

func TestLocalStoreSameBytesDifferentNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	a, err := store.Upload(context.Background(), []byte("file contents"), "a.jpg")
	require.NoError(t, err)
	b, err := store.Upload(context.Background(), []byte("file contents"), "b.png")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func newTestPinataStore(t *testing.T, handler http.HandlerFunc) *PinataStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := NewPinataStore("test-jwt")
	store.endpoint = server.URL
	return store
}

func TestPinataStoreUpload(t *testing.T) {
	store := newTestPinataStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-jwt", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "photo.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"IpfsHash":"bafyTest123"}`))
	})
	require.Equal(t, "pinata", store.Mode())

	cid, err := store.Upload(context.Background(), []byte("file contents"), "photo.jpg")
	require.NoError(t, err)
	require.Equal(t, "bafyTest123", cid)
}

func TestPinataStoreRejectsPayload(t *testing.T) {
	store := newTestPinataStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "file too large", http.StatusBadRequest)
	})

	_, err := store.Upload(context.Background(), []byte("file contents"), "photo.jpg")
	require.ErrorIs(t, err, ErrUploadRejected)
}

func TestPinataStoreServerError(t *testing.T) {
	store := newTestPinataStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	_, err := store.Upload(context.Background(), []byte("file contents"), "photo.jpg")
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestPinataStoreUnreachable(t *testing.T) {
	store := NewPinataStore("test-jwt")
	store.endpoint = "http://127.0.0.1:1"

	_, err := store.Upload(context.Background(), []byte("file contents"), "photo.jpg")
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("PINATA_JWT", "")
	require.Equal(t, "local", NewFromEnv().Mode())

	t.Setenv("PINATA_JWT", "jwt")
	require.Equal(t, "pinata", NewFromEnv().Mode())
}
