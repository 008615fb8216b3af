package blob_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/compat/internal/adapters/blob"
	"go.trai.ch/compat/internal/core/domain"
)

const noSuchKeyBody = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`

func isolateAWS(t *testing.T) {
	t.Helper()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(t.TempDir(), "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "credentials"))
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	t.Setenv("AWS_PROFILE", "")
}

func newS3Server(t *testing.T, objects map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Path == "/data/broken" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `<Error><Code>AccessDenied</Code><Message>denied</Message></Error>`)
			return
		}
		body, ok := objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, noSuchKeyBody)
			return
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newS3Store(t *testing.T, endpoint, prefix string) *blob.S3Store {
	t.Helper()
	isolateAWS(t)
	store, err := blob.NewS3Store(context.Background(), domain.StoreConfig{
		Kind:      domain.StoreS3,
		Bucket:    "data",
		Prefix:    prefix,
		Region:    "us-east-1",
		Endpoint:  endpoint,
		Anonymous: true,
	}, func(o *s3.Options) {
		o.RetryMaxAttempts = 1
	})
	require.NoError(t, err)
	return store
}

func TestS3Store_Fetch(t *testing.T) {
	srv, _ := newS3Server(t, map[string]string{
		"/data/manifest.json": `{"Newtonsoft.Json":"microsoftlibs.newtonsoft.json.json"}`,
	})
	store := newS3Store(t, srv.URL, "")

	body, err := store.Fetch(context.Background(), "manifest.json")
	require.NoError(t, err)
	defer body.Close() //nolint:errcheck // Test cleanup

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Newtonsoft.Json":"microsoftlibs.newtonsoft.json.json"}`, string(data))
}

func TestS3Store_Prefix(t *testing.T) {
	srv, _ := newS3Server(t, map[string]string{
		"/data/v1/serilog.json.gz": "gz",
	})
	store := newS3Store(t, srv.URL, "v1/")

	body, err := store.Fetch(context.Background(), "serilog.json.gz")
	require.NoError(t, err)
	_ = body.Close()
}

func TestS3Store_NotFound(t *testing.T) {
	srv, _ := newS3Server(t, nil)
	store := newS3Store(t, srv.URL, "")

	_, err := store.Fetch(context.Background(), "missing.json.gz")
	require.ErrorIs(t, err, domain.ErrBlobNotFound)
	assert.NotErrorIs(t, err, domain.ErrTransportFailure)
}

func TestS3Store_TransportFailure(t *testing.T) {
	srv, hits := newS3Server(t, nil)
	store := newS3Store(t, srv.URL, "")

	_, err := store.Fetch(context.Background(), "broken")
	require.ErrorIs(t, err, domain.ErrTransportFailure)
	assert.NotErrorIs(t, err, domain.ErrBlobNotFound)
	assert.Equal(t, int32(1), hits.Load())
}

func TestS3Store_CancelledContext(t *testing.T) {
	srv, hits := newS3Server(t, nil)
	store := newS3Store(t, srv.URL, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Fetch(ctx, "manifest.json")
	require.ErrorIs(t, err, domain.ErrTransportFailure)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, hits.Load())
}

func TestLocalStore_Fetch(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "serilog.json.gz"), []byte("doc"), 0o600))

	store := blob.NewLocalStore(root)

	body, err := store.Fetch(context.Background(), "docs/serilog.json.gz")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, body.Close())
	assert.Equal(t, "doc", string(data))

	_, err = store.Fetch(context.Background(), "docs/missing.json.gz")
	require.ErrorIs(t, err, domain.ErrBlobNotFound)

	_, err = store.Fetch(context.Background(), "../outside")
	require.ErrorIs(t, err, domain.ErrBlobNotFound)
}

func TestNewStore(t *testing.T) {
	store, err := blob.NewStore(context.Background(), domain.StoreConfig{Kind: domain.StoreLocal, Root: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &blob.LocalStore{}, store)

	_, err = blob.NewStore(context.Background(), domain.StoreConfig{Kind: "ftp"})
	require.ErrorIs(t, err, domain.ErrUnknownStoreKind)
}
