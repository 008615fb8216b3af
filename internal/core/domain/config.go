package domain

// Checker names accepted in the configuration, in default fallback order.
const (
	CheckerExternal    = "external"
	CheckerInternal    = "internal"
	CheckerSDK         = "sdk"
	CheckerPortability = "portability"
)

// Blob store kinds.
const (
	StoreS3    = "s3"
	StoreLocal = "local"
)

// DefaultCheckers is the fallback order used when the configuration does not set one.
func DefaultCheckers() []string {
	return []string{CheckerExternal, CheckerInternal, CheckerSDK, CheckerPortability}
}

// StoreConfig selects and configures the blob metadata store.
type StoreConfig struct {
	Kind      string
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	Anonymous bool
	Root      string
}

// Config is the resolved configuration of the engine.
type Config struct {
	// Path is the file the configuration was read from, empty when defaults are used.
	Path      string
	Framework string
	CacheRoot string
	Checkers  []string
	Store     StoreConfig
	Feeds     []Feed
}

// DefaultConfig returns the configuration used when no compat.yaml is found.
func DefaultConfig() *Config {
	return &Config{
		Framework: DefaultFramework,
		CacheRoot: DefaultCacheRoot(),
		Checkers:  DefaultCheckers(),
		Store: StoreConfig{
			Kind:      StoreS3,
			Bucket:    DefaultBucket,
			Region:    DefaultRegion,
			Anonymous: true,
		},
	}
}

const (
	// DefaultBucket is the public bucket holding the published compatibility datastore.
	DefaultBucket = "aws.portingassistant.dotnet.datastore"
	// DefaultRegion is the region of DefaultBucket.
	DefaultRegion = "us-west-2"
)
