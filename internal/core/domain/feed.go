package domain

// Feed is a named package source queried for existence and compatibility.
type Feed struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// CompatibilityResult is the answer of an authoritative compatibility lookup.
type CompatibilityResult struct {
	IsCompatible       bool
	CompatibleDlls     []string
	IncompatibleDlls   []string
	Source             string
	DependencyPackages []PackageVersionPair
}

// ProbeState is a state of the sequential feed probe.
type ProbeState uint8

const (
	// ProbePending means no feed has been asked yet.
	ProbePending ProbeState = iota
	// ProbeProbing means a feed is being asked.
	ProbeProbing
	// ProbeFound means a feed reported the package.
	ProbeFound
	// ProbeNotFound means every feed was asked and none reported the package.
	ProbeNotFound
	// ProbeCancelled means the caller gave up before a feed answered.
	ProbeCancelled
	// ProbeFatal means a feed failed in an unexpected way and probing stopped.
	ProbeFatal
)

// String returns the state name.
func (s ProbeState) String() string {
	switch s {
	case ProbePending:
		return "Pending"
	case ProbeProbing:
		return "Probing"
	case ProbeFound:
		return "Found"
	case ProbeNotFound:
		return "NotFound"
	case ProbeCancelled:
		return "Cancelled"
	case ProbeFatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s ProbeState) Terminal() bool {
	return s >= ProbeFound
}
