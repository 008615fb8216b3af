package checker

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/klauspost/compress/gzip"
	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/zerr"
)

// EncodeDetails writes details as gzip-compressed JSON, the disk cache format.
func EncodeDetails(w io.Writer, details *domain.PackageDetails) error {
	zw := gzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(details); err != nil {
		_ = zw.Close()
		return zerr.Wrap(err, "encode package details")
	}
	if err := zw.Close(); err != nil {
		return zerr.Wrap(err, "flush gzip stream")
	}
	return nil
}

// DecodeDetails reads a gzip-compressed PackageDetails document.
func DecodeDetails(r io.Reader) (*domain.PackageDetails, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, domain.Classify(domain.ErrMalformedDocument, err)
	}
	defer func() { _ = zr.Close() }()

	var details domain.PackageDetails
	if err := json.NewDecoder(zr).Decode(&details); err != nil {
		return nil, domain.Classify(domain.ErrMalformedDocument, err)
	}
	return &details, nil
}

// DecodeWrapped reads a gzip-compressed remote document, which wraps a single
// PackageDetails under an arbitrary alias key. The first value wins.
// An empty wrapper or a document without a package yields domain.ErrPackageNotFound.
func DecodeWrapped(r io.Reader) (*domain.PackageDetails, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, domain.Classify(domain.ErrMalformedDocument, err)
	}
	defer func() { _ = zr.Close() }()

	dec := json.NewDecoder(zr)
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, domain.Classify(domain.ErrMalformedDocument, err)
	}
	if tok == nil {
		return nil, domain.ErrPackageNotFound
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedDocument, "decode wrapped document"), "reason", "not an object")
	}
	if !dec.More() {
		return nil, domain.ErrPackageNotFound
	}
	if _, err := dec.Token(); err != nil {
		return nil, domain.Classify(domain.ErrMalformedDocument, err)
	}

	var details *domain.PackageDetails
	if err := dec.Decode(&details); err != nil {
		return nil, domain.Classify(domain.ErrMalformedDocument, err)
	}
	if details.IsEmpty() {
		return nil, domain.ErrPackageNotFound
	}
	return details, nil
}

// DecodeManifest reads the uncompressed manifest table.
func DecodeManifest(r io.Reader) (*domain.Manifest, error) {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, domain.Classify(domain.ErrMalformedDocument, err)
	}
	return domain.NewManifest(raw), nil
}
