package commands

import (
	"os"
	"strings"

	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// ParsePackageSpecs parses id@version arguments. The last @ separates the version.
func ParsePackageSpecs(args []string) ([]domain.PackageVersionPair, error) {
	pairs := make([]domain.PackageVersionPair, 0, len(args))
	for _, arg := range args {
		i := strings.LastIndexByte(arg, '@')
		if i <= 0 || i == len(arg)-1 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidPackageSpec, "parse package"), "arg", arg)
		}
		pairs = append(pairs, domain.PackageVersionPair{
			PackageID:  strings.TrimSpace(arg[:i]),
			Version:    strings.TrimSpace(arg[i+1:]),
			SourceType: domain.SourceNuGet,
		})
	}
	return pairs, nil
}

// LoadRequestFile reads a list of requests from a YAML or JSON file.
// Requests without a source type default to NUGET.
func LoadRequestFile(path string) ([]domain.PackageVersionPair, error) {
	//nolint:gosec // Path is provided by the user on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrRequestFileReadFailed, err), "path", path)
	}

	var pairs []domain.PackageVersionPair
	if err := yaml.Unmarshal(data, &pairs); err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrRequestFileReadFailed, err), "path", path)
	}

	for i := range pairs {
		if pairs[i].SourceType == "" {
			pairs[i].SourceType = domain.SourceNuGet
		}
	}
	return pairs, nil
}
