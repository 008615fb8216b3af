package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/compat/internal/adapters/config"
	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoader(log), log
}

func TestLoader_Load_DefaultsWithoutFile(t *testing.T) {
	loader, _ := newLoader(t)

	cfg, err := loader.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoader_Load_FullFile(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	path := createFile(t, root, domain.ConfigFileName, `
version: "1"
framework: net8.0
cacheDir: .cache/compat
checkers: [internal, External]
store:
  kind: s3
  bucket: my-bucket
  prefix: data/
  region: eu-west-1
  endpoint: http://localhost:9000
  anonymous: false
feeds:
  - name: corp
    url: https://nuget.corp.example/v3/index.json
`)

	cfg, err := loader.Load(root)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "net8.0", cfg.Framework)
	assert.Equal(t, filepath.Join(root, ".cache", "compat"), cfg.CacheRoot)
	assert.Equal(t, []string{domain.CheckerInternal, domain.CheckerExternal}, cfg.Checkers)
	assert.Equal(t, domain.StoreConfig{
		Kind:      domain.StoreS3,
		Bucket:    "my-bucket",
		Prefix:    "data/",
		Region:    "eu-west-1",
		Endpoint:  "http://localhost:9000",
		Anonymous: false,
	}, cfg.Store)
	assert.Equal(t, []domain.Feed{{Name: "corp", URL: "https://nuget.corp.example/v3/index.json"}}, cfg.Feeds)
}

func TestLoader_Load_WalksUpToParent(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "framework: net7.0\n")

	nested := filepath.Join(root, "src", "App")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	cfg, err := loader.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, "net7.0", cfg.Framework)
	assert.Equal(t, filepath.Join(root, domain.ConfigFileName), cfg.Path)
}

func TestLoader_Load_LocalStore(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, `
store:
  kind: local
  root: ./blobs
`)

	cfg, err := loader.Load(root)
	require.NoError(t, err)
	assert.Equal(t, domain.StoreLocal, cfg.Store.Kind)
	assert.Equal(t, filepath.Join(root, "blobs"), cfg.Store.Root)
}

func TestLoader_Load_DuplicateCheckerWarns(t *testing.T) {
	loader, log := newLoader(t)
	log.EXPECT().Warn(gomock.Any()).Times(1)
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "checkers: [sdk, sdk, portability]\n")

	cfg, err := loader.Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.CheckerSDK, domain.CheckerPortability}, cfg.Checkers)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "invalid yaml", content: "checkers: [external\n", wantErr: domain.ErrConfigParseFailed},
		{name: "unknown checker", content: "checkers: [external, nuget.org]\n", wantErr: domain.ErrUnknownChecker},
		{name: "unknown store kind", content: "store:\n  kind: gcs\n", wantErr: domain.ErrUnknownStoreKind},
		{name: "local store without root", content: "store:\n  kind: local\n", wantErr: domain.ErrConfigParseFailed},
		{name: "feed without url", content: "feeds:\n  - name: corp\n", wantErr: domain.ErrConfigParseFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t)
			root := t.TempDir()
			createFile(t, root, domain.ConfigFileName, tt.content)

			_, err := loader.Load(root)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_Load_SkipsDirectoryNamedLikeConfig(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, domain.ConfigFileName), domain.DirPerm))

	cfg, err := loader.Load(root)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
}
