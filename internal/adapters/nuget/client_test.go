package nuget_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/compat/internal/adapters/nuget"
	"go.trai.ch/compat/internal/core/domain"
)

const standardNuspec = `<?xml version="1.0" encoding="utf-8"?>
<package xmlns="http://schemas.microsoft.com/packaging/2013/05/nuspec.xsd">
  <metadata>
    <id>Contoso.Core</id>
    <version>1.2.0</version>
    <dependencies>
      <group targetFramework=".NETFramework4.7.2" />
      <group targetFramework=".NETStandard2.0">
        <dependency id="Contoso.Abstractions" version="1.0.0" exclude="Build,Analyzers" />
      </group>
    </dependencies>
  </metadata>
</package>`

const desktopNuspec = `<package><metadata><id>Contoso.Legacy</id><version>3.0.0</version>
<dependencies><group targetFramework=".NETFramework4.8" /></dependencies></metadata></package>`

const plainNuspec = `<package><metadata><id>Contoso.Plain</id><version>0.1.0</version></metadata></package>`

type feedServer struct {
	srv        *httptest.Server
	indexHits  atomic.Int32
	packages   map[string][]string
	nuspecs    map[string]string
	failStatus int
	block      bool
}

func newFeedServer(t *testing.T) *feedServer {
	t.Helper()
	fs := &feedServer{packages: map[string][]string{}, nuspecs: map[string]string{}}
	fs.srv = httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(fs.srv.Close)
	return fs
}

func (fs *feedServer) feed(name string) domain.Feed {
	return domain.Feed{Name: name, URL: fs.srv.URL + "/v3/index.json"}
}

func (fs *feedServer) serve(w http.ResponseWriter, r *http.Request) {
	if fs.block {
		<-r.Context().Done()
		return
	}
	if r.URL.Path == "/v3/index.json" {
		fs.indexHits.Add(1)
		_, _ = io.WriteString(w, `{"version":"3.0.0","resources":[
			{"@id":"`+fs.srv.URL+`/search","@type":"SearchQueryService"},
			{"@id":"`+fs.srv.URL+`/flat","@type":"PackageBaseAddress/3.0.0"}]}`)
		return
	}
	if fs.failStatus != 0 {
		w.WriteHeader(fs.failStatus)
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/flat/"), "/")
	switch {
	case len(parts) == 2 && parts[1] == "index.json":
		versions, ok := fs.packages[parts[0]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{"versions":["`+strings.Join(versions, `","`)+`"]}`)
	case len(parts) == 3 && strings.HasSuffix(parts[2], ".nuspec"):
		spec, ok := fs.nuspecs[parts[0]+"/"+parts[1]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, spec)
	default:
		http.NotFound(w, r)
	}
}

func TestClient_Exists(t *testing.T) {
	fs := newFeedServer(t)
	fs.packages["contoso.core"] = []string{"1.0.0", "1.2.0"}
	client := nuget.NewClient(nil, time.Second)
	feed := fs.feed("corp")

	ok, err := client.Exists(context.Background(), "Contoso.Core", "1.2.0", feed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.Exists(context.Background(), "Contoso.Core", "1.0", feed)
	require.NoError(t, err)
	assert.True(t, ok, "1.0 normalises to 1.0.0")

	ok, err = client.Exists(context.Background(), "Contoso.Core", "2.0.0", feed)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = client.Exists(context.Background(), "Contoso.Missing", "1.0.0", feed)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, int32(1), fs.indexHits.Load(), "service index is resolved once per feed")
}

func TestClient_ExistsServerError(t *testing.T) {
	fs := newFeedServer(t)
	fs.failStatus = http.StatusInternalServerError
	client := nuget.NewClient(nil, time.Second)

	_, err := client.Exists(context.Background(), "Contoso.Core", "1.0.0", fs.feed("corp"))
	require.ErrorIs(t, err, domain.ErrTransportFailure)
	assert.False(t, domain.IsCancellation(err))
}

func TestClient_ExistsTimeout(t *testing.T) {
	fs := newFeedServer(t)
	fs.block = true
	client := nuget.NewClient(nil, 50*time.Millisecond)

	_, err := client.Exists(context.Background(), "Contoso.Core", "1.0.0", fs.feed("corp"))
	require.ErrorIs(t, err, domain.ErrProbeCancelled)
	assert.True(t, domain.IsCancellation(err))
}

func TestClient_ExistsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := nuget.NewClient(nil, time.Second)
	_, err := client.Exists(context.Background(), "Contoso.Core", "1.0.0", domain.Feed{Name: "gone", URL: url + "/v3/index.json"})
	require.ErrorIs(t, err, domain.ErrTransportFailure)
}

func TestClient_CheckCompatibility(t *testing.T) {
	fs := newFeedServer(t)
	fs.packages["contoso.core"] = []string{"1.2.0"}
	fs.packages["contoso.legacy"] = []string{"3.0.0"}
	fs.packages["contoso.plain"] = []string{"0.1.0"}
	fs.nuspecs["contoso.core/1.2.0"] = standardNuspec
	fs.nuspecs["contoso.legacy/3.0.0"] = desktopNuspec
	fs.nuspecs["contoso.plain/0.1.0"] = plainNuspec

	empty := newFeedServer(t)
	client := nuget.NewClient(nil, time.Second)
	feeds := []domain.Feed{empty.feed("empty"), fs.feed("corp")}

	tests := []struct {
		name       string
		id         string
		version    string
		compatible bool
		deps       []domain.PackageVersionPair
	}{
		{
			name:       "netstandard group",
			id:         "Contoso.Core",
			version:    "1.2.0",
			compatible: true,
			deps: []domain.PackageVersionPair{
				{PackageID: "Contoso.Abstractions", Version: "1.0.0", SourceType: domain.SourceNuGet},
			},
		},
		{name: "desktop only", id: "Contoso.Legacy", version: "3.0.0"},
		{name: "no dependency groups", id: "Contoso.Plain", version: "0.1.0", compatible: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := client.CheckCompatibility(context.Background(), tt.id, tt.version, "net6.0", feeds)
			require.NoError(t, err)
			assert.Equal(t, tt.compatible, res.IsCompatible)
			assert.Equal(t, "corp", res.Source)
			assert.Equal(t, tt.deps, res.DependencyPackages)
		})
	}
}

func TestClient_CheckCompatibilityNotFound(t *testing.T) {
	fs := newFeedServer(t)
	client := nuget.NewClient(nil, time.Second)

	_, err := client.CheckCompatibility(context.Background(), "Contoso.Core", "1.0.0", "net6.0", []domain.Feed{fs.feed("corp")})
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestClient_CheckCompatibilitySkipsFailingFeeds(t *testing.T) {
	good := newFeedServer(t)
	good.packages["contoso.core"] = []string{"1.2.0"}
	good.nuspecs["contoso.core/1.2.0"] = standardNuspec

	broken := newFeedServer(t)
	broken.failStatus = http.StatusInternalServerError

	stalled := newFeedServer(t)
	stalled.block = true

	tests := []struct {
		name  string
		first domain.Feed
	}{
		{name: "server error", first: broken.feed("broken")},
		{name: "timeout", first: stalled.feed("stalled")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := nuget.NewClient(nil, 200*time.Millisecond)
			feeds := []domain.Feed{tt.first, good.feed("corp")}

			res, err := client.CheckCompatibility(context.Background(), "Contoso.Core", "1.2.0", "net6.0", feeds)
			require.NoError(t, err)
			assert.True(t, res.IsCompatible)
			assert.Equal(t, "corp", res.Source)
		})
	}
}

func TestClient_CheckCompatibilityReportsFeedErrorsWhenNothingIsFound(t *testing.T) {
	broken := newFeedServer(t)
	broken.failStatus = http.StatusInternalServerError
	empty := newFeedServer(t)
	client := nuget.NewClient(nil, time.Second)

	_, err := client.CheckCompatibility(context.Background(), "Contoso.Core", "1.2.0", "net6.0",
		[]domain.Feed{broken.feed("broken"), empty.feed("empty")})
	require.ErrorIs(t, err, domain.ErrTransportFailure)
	assert.NotErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestClient_CheckCompatibilityUsesListedVersion(t *testing.T) {
	fs := newFeedServer(t)
	fs.packages["contoso.core"] = []string{"1.2.0"}
	fs.nuspecs["contoso.core/1.2.0"] = standardNuspec
	client := nuget.NewClient(nil, time.Second)
	feed := fs.feed("corp")

	ok, err := client.Exists(context.Background(), "Contoso.Core", "1.2", feed)
	require.NoError(t, err)
	require.True(t, ok)

	res, err := client.CheckCompatibility(context.Background(), "Contoso.Core", "1.2", "net6.0", []domain.Feed{feed})
	require.NoError(t, err)
	assert.True(t, res.IsCompatible)
}
