package nuget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetFramework_Supports(t *testing.T) {
	tests := []struct {
		project string
		group   string
		want    bool
	}{
		{"net6.0", ".NETStandard2.0", true},
		{"net6.0", "netstandard2.1", true},
		{"netcoreapp2.1", "netstandard2.1", false},
		{"netcoreapp2.1", "netstandard1.3", true},
		{"net6.0", ".NETCoreApp3.1", true},
		{"net6.0", "net5.0", true},
		{"net6.0", "net6.0-windows7.0", true},
		{"net6.0", "net8.0", false},
		{"net6.0", ".NETFramework4.7.2", false},
		{"net6.0", "net472", false},
		{"net6.0", "", true},
		{"net6.0", "portable-net45+win8", false},
		{"net48", ".NETStandard2.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.project+"/"+tt.group, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFramework(tt.project).supports(parseFramework(tt.group)))
		})
	}
}
