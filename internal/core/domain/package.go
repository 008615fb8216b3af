package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// PackageSourceType identifies which kind of source a request originated from.
type PackageSourceType string

const (
	// SourceNuGet marks a package referenced from a NuGet feed.
	SourceNuGet PackageSourceType = "NUGET"
	// SourceSDK marks an SDK or framework namespace reference.
	SourceSDK PackageSourceType = "SDK"
	// SourcePortability marks a reference resolved through the portability catalog.
	SourcePortability PackageSourceType = "PORTABILITY"
	// SourceInternal marks a package hosted on a private feed.
	SourceInternal PackageSourceType = "INTERNAL"
)

// PackageVersionPair is a single resolution request.
type PackageVersionPair struct {
	PackageID  string            `json:"packageId" yaml:"packageId"`
	Version    string            `json:"version" yaml:"version"`
	SourceType PackageSourceType `json:"sourceType,omitempty" yaml:"sourceType,omitempty"`
}

// Key returns the identity key of the request. Package IDs compare case-insensitively.
func (p PackageVersionPair) Key() PackageKey {
	return PackageKey{ID: strings.ToLower(p.PackageID), Version: p.Version}
}

// String renders the pair as id@version.
func (p PackageVersionPair) String() string {
	return p.PackageID + "@" + p.Version
}

// PackageKey is the case-normalised identity of a PackageVersionPair.
type PackageKey struct {
	ID      string
	Version string
}

// String renders the key as id@version.
func (k PackageKey) String() string {
	return k.ID + "@" + k.Version
}

// ApiDetails describes the per-framework availability of one API member.
//
//nolint:revive // field naming follows the published document schema
type ApiDetails struct {
	MethodName      string                `json:"MethodName"`
	MethodSignature string                `json:"MethodSignature"`
	Targets         map[string]VersionSet `json:"Targets"`
}

// LicenseDetails maps license names to the versions published under them.
type LicenseDetails struct {
	License map[string]VersionSet `json:"License"`
}

// PackageDetails is the compatibility metadata for one package.
type PackageDetails struct {
	Name     string                `json:"Name"`
	Versions VersionSet            `json:"Versions"`
	Api      []ApiDetails          `json:"Api"` //nolint:revive // document schema
	Targets  map[string]VersionSet `json:"Targets"`
	License  *LicenseDetails       `json:"License,omitempty"`
}

// IsEmpty reports whether the document carries no package at all.
func (d *PackageDetails) IsEmpty() bool {
	return d == nil || d.Name == ""
}

// Validate checks that every version listed under a target framework is a known version.
func (d *PackageDetails) Validate() error {
	if d == nil {
		return nil
	}
	for framework, versions := range d.Targets {
		for _, v := range versions {
			if d.Versions.Contains(v) {
				continue
			}
			err := zerr.With(zerr.Wrap(ErrTargetsInvariant, "validate package details"), "package_id", d.Name)
			err = zerr.With(err, "framework", framework)
			return zerr.With(err, "version", v)
		}
	}
	return nil
}
