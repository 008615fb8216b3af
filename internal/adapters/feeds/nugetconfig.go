package feeds

import (
	"encoding/xml"
	"io"
	"slices"
	"strings"

	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/zerr"
)

type nugetConfig struct {
	PackageSources         sourceList `xml:"packageSources"`
	DisabledPackageSources sourceList `xml:"disabledPackageSources"`
}

type sourceList struct {
	Items []sourceItem `xml:",any"`
}

type sourceItem struct {
	XMLName xml.Name
	Key     string `xml:"key,attr"`
	Value   string `xml:"value,attr"`
}

// parseNuGetConfig returns the enabled package sources of a nuget.config document
// in declaration order. <clear/> drops everything declared before it.
func parseNuGetConfig(r io.Reader) ([]domain.Feed, error) {
	var doc nugetConfig
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, zerr.Wrap(domain.Classify(domain.ErrFeedConfigParseFailed, err), "decode nuget.config")
	}

	var sources []domain.Feed
	for _, item := range doc.PackageSources.Items {
		switch strings.ToLower(item.XMLName.Local) {
		case "clear":
			sources = sources[:0]
		case "add":
			if item.Key == "" || item.Value == "" {
				continue
			}
			sources = slices.DeleteFunc(sources, func(f domain.Feed) bool {
				return strings.EqualFold(f.Name, item.Key)
			})
			sources = append(sources, domain.Feed{Name: item.Key, URL: item.Value})
		case "remove":
			sources = slices.DeleteFunc(sources, func(f domain.Feed) bool {
				return strings.EqualFold(f.Name, item.Key)
			})
		}
	}

	for _, item := range doc.DisabledPackageSources.Items {
		if !strings.EqualFold(item.XMLName.Local, "add") || !strings.EqualFold(item.Value, "true") {
			continue
		}
		sources = slices.DeleteFunc(sources, func(f domain.Feed) bool {
			return strings.EqualFold(f.Name, item.Key)
		})
	}

	return sources, nil
}
