package nuget

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

type frameworkFamily uint8

const (
	familyUnknown frameworkFamily = iota
	familyAny
	familyStandard
	familyCore
	familyDesktop
)

type targetFramework struct {
	family  frameworkFamily
	version *semver.Version
}

// parseFramework understands both the nuspec spelling (".NETStandard2.0") and
// the short folder spelling ("netstandard2.0", "net6.0-windows", "net472").
// An empty moniker applies to every framework.
func parseFramework(moniker string) targetFramework {
	s := strings.ToLower(strings.TrimSpace(moniker))
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return targetFramework{family: familyAny}
	}
	if i := strings.IndexByte(s, '-'); i >= 0 {
		s = s[:i]
	}

	switch {
	case strings.HasPrefix(s, "netstandard"):
		return withVersion(familyStandard, strings.TrimPrefix(s, "netstandard"))
	case strings.HasPrefix(s, "netcoreapp"):
		return withVersion(familyCore, strings.TrimPrefix(s, "netcoreapp"))
	case strings.HasPrefix(s, "netframework"):
		return withVersion(familyDesktop, strings.TrimPrefix(s, "netframework"))
	case strings.HasPrefix(s, "net"):
		rest := strings.TrimPrefix(s, "net")
		if !strings.Contains(rest, ".") {
			// net45, net472
			return targetFramework{family: familyDesktop}
		}
		tf := withVersion(familyCore, rest)
		if tf.version != nil && tf.version.Major() < 5 {
			tf.family = familyDesktop
		}
		return tf
	default:
		return targetFramework{family: familyUnknown}
	}
}

func withVersion(family frameworkFamily, raw string) targetFramework {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return targetFramework{family: familyUnknown}
	}
	return targetFramework{family: family, version: v}
}

var (
	netStandard20 = semver.MustParse("2.0")
	netStandard21 = semver.MustParse("2.1")
	netCore30     = semver.MustParse("3.0")
)

// supports reports whether a package group targeting dep can be consumed by a project targeting t.
func (t targetFramework) supports(dep targetFramework) bool {
	if t.family != familyCore || t.version == nil {
		return false
	}

	switch dep.family {
	case familyAny:
		return true
	case familyStandard:
		if !dep.version.GreaterThan(netStandard20) {
			return true
		}
		return !dep.version.GreaterThan(netStandard21) && !t.version.LessThan(netCore30)
	case familyCore:
		return !dep.version.GreaterThan(t.version)
	default:
		return false
	}
}
