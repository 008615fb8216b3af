package checker_test

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
	"go.trai.ch/compat/internal/core/domain"
)

func gzipJSON(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	require.NoError(t, json.NewEncoder(zw).Encode(v))
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func reader(b []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(b))
}

func newtonsoft() *domain.PackageDetails {
	return &domain.PackageDetails{
		Name:     "Newtonsoft.Json",
		Versions: domain.NewVersionSet("12.0.3", "12.0.4", "13.0.1"),
		Api: []domain.ApiDetails{
			{
				MethodName:      "SerializeObject",
				MethodSignature: "Newtonsoft.Json.JsonConvert.SerializeObject(object)",
				Targets: map[string]domain.VersionSet{
					"net6.0": domain.NewVersionSet("12.0.3", "12.0.4"),
				},
			},
		},
		Targets: map[string]domain.VersionSet{
			"net6.0":        domain.NewVersionSet("12.0.3", "12.0.4", "13.0.1"),
			"netcoreapp3.1": domain.NewVersionSet("12.0.3"),
		},
		License: &domain.LicenseDetails{
			License: map[string]domain.VersionSet{
				"MIT": domain.NewVersionSet("12.0.3", "12.0.4", "13.0.1"),
			},
		},
	}
}

func wrapped(t *testing.T, details *domain.PackageDetails) []byte {
	t.Helper()
	return gzipJSON(t, map[string]*domain.PackageDetails{"Package": details})
}

type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}
