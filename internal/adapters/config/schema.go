package config

// File represents the structure of the compat.yaml configuration file.
type File struct {
	Version   string    `yaml:"version"`
	Framework string    `yaml:"framework"`
	CacheDir  string    `yaml:"cacheDir"`
	Checkers  []string  `yaml:"checkers"`
	Store     *StoreDTO `yaml:"store"`
	Feeds     []FeedDTO `yaml:"feeds"`
}

// StoreDTO represents the blob store section.
type StoreDTO struct {
	Kind      string `yaml:"kind"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	Anonymous *bool  `yaml:"anonymous"`
	Root      string `yaml:"root"`
}

// FeedDTO represents an additional internal feed.
type FeedDTO struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}
