package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgf/backend/internal/config"
)

func storageConfig(baseURL string) *config.Config {
	return &config.Config{
		StorageURL:        baseURL,
		StorageServiceKey: "service-key",
		StorageBucket:     "oeuvres",
	}
}

func TestStoragePut(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotUpsert, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotUpsert = r.Header.Get("x-upsert")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewStorageService(storageConfig(srv.URL))

	url, err := svc.Put(context.Background(), []byte("jpeg bytes"), "peinture/images", "oeuvre.jpg")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/storage/v1/object/oeuvres/peinture/images/oeuvre.jpg", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, "application/octet-stream", gotContentType)
	assert.Equal(t, []byte("jpeg bytes"), gotBody)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/oeuvres/peinture/images/oeuvre.jpg", url)
}

func TestStoragePutErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"invalid signature"}`))
	}))
	defer srv.Close()

	svc := NewStorageService(storageConfig(srv.URL))

	_, err := svc.Put(context.Background(), []byte("data"), "folder", "file.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpload)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "invalid signature")
}

func TestStoragePutNetworkFailure(t *testing.T) {
	svc := NewStorageService(storageConfig("http://127.0.0.1:1"))

	_, err := svc.Put(context.Background(), []byte("data"), "folder", "file.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpload)
}

func TestStorageDelete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewStorageService(storageConfig(srv.URL))

	svc.Delete(context.Background(), srv.URL+"/storage/v1/object/public/oeuvres/peinture/images/oeuvre.jpg")

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/storage/v1/object/oeuvres/peinture/images/oeuvre.jpg", gotPath)
}

func TestStorageDeleteIgnoresForeignURL(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	svc := NewStorageService(storageConfig(srv.URL))

	svc.Delete(context.Background(), "https://cdn.example.org/images/external.jpg")
	assert.False(t, called)
}

func TestStorageTransformURL(t *testing.T) {
	svc := NewStorageService(storageConfig("https://storage.example.org"))

	public := "https://storage.example.org/storage/v1/object/public/oeuvres/peinture/images/oeuvre.jpg"
	got := svc.TransformURL(public, 600, 400, 75)
	assert.Equal(t,
		"https://storage.example.org/storage/v1/render/image/public/oeuvres/peinture/images/oeuvre.jpg?width=600&height=400&resize=contain&quality=75",
		got)

	foreign := "https://cdn.example.org/images/external.jpg"
	assert.Equal(t, foreign, svc.TransformURL(foreign, 600, 400, 75))
}
