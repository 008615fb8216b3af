// Package config provides the configuration loader for compat.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var knownCheckers = []string{
	domain.CheckerExternal,
	domain.CheckerInternal,
	domain.CheckerSDK,
	domain.CheckerPortability,
}

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds compat.yaml in cwd or the nearest parent directory and merges it over
// the defaults. Without a file the defaults are returned.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	if abs, err := filepath.Abs(cwd); err == nil {
		cwd = abs
	}
	configPath, found := findConfiguration(cwd)
	if !found {
		return cfg, nil
	}

	var file File
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, err
	}

	cfg.Path = configPath
	if err := l.apply(cfg, &file, filepath.Dir(configPath)); err != nil {
		return nil, zerr.With(err, "config", configPath)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) apply(cfg *domain.Config, file *File, configDir string) error {
	if file.Version != "" && file.Version != "1" {
		l.Logger.Warn("unsupported compat.yaml version " + file.Version + ", reading it as version 1")
	}

	if file.Framework != "" {
		cfg.Framework = file.Framework
	}
	if file.CacheDir != "" {
		cfg.CacheRoot = resolvePath(configDir, file.CacheDir)
	}

	if len(file.Checkers) > 0 {
		checkers := make([]string, 0, len(file.Checkers))
		for _, name := range file.Checkers {
			name = strings.ToLower(strings.TrimSpace(name))
			if !slices.Contains(knownCheckers, name) {
				return zerr.With(zerr.Wrap(domain.ErrUnknownChecker, "read checkers"), "checker", name)
			}
			if slices.Contains(checkers, name) {
				l.Logger.Warn("checker " + name + " listed twice, keeping the first position")
				continue
			}
			checkers = append(checkers, name)
		}
		cfg.Checkers = checkers
	}

	if file.Store != nil {
		if err := applyStore(&cfg.Store, file.Store, configDir); err != nil {
			return err
		}
	}

	for i, feed := range file.Feeds {
		if feed.Name == "" || feed.URL == "" {
			feedErr := zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "feed requires name and url"), "index", i)
			return zerr.With(feedErr, "name", feed.Name)
		}
		cfg.Feeds = append(cfg.Feeds, domain.Feed{Name: feed.Name, URL: feed.URL})
	}

	return nil
}

func applyStore(store *domain.StoreConfig, dto *StoreDTO, configDir string) error {
	if dto.Kind != "" {
		store.Kind = strings.ToLower(dto.Kind)
	}

	switch store.Kind {
	case domain.StoreS3:
		if dto.Bucket != "" {
			store.Bucket = dto.Bucket
		}
		if dto.Region != "" {
			store.Region = dto.Region
		}
		store.Prefix = dto.Prefix
		store.Endpoint = dto.Endpoint
		if dto.Anonymous != nil {
			store.Anonymous = *dto.Anonymous
		}
	case domain.StoreLocal:
		if dto.Root == "" {
			return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "local store requires root"), "kind", store.Kind)
		}
		store.Root = resolvePath(configDir, dto.Root)
		store.Prefix = dto.Prefix
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownStoreKind, "read store"), "kind", dto.Kind)
	}
	return nil
}

// resolvePath expands a leading ~ and anchors relative paths at the config directory.
func resolvePath(configDir, path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(configDir, path))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(domain.Classify(domain.ErrConfigReadFailed, err), "config", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(domain.Classify(domain.ErrConfigParseFailed, parseErr), "config", configPath)
	}

	return nil
}
