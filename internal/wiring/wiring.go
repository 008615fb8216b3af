// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/compat/internal/adapters/blob"
	_ "go.trai.ch/compat/internal/adapters/config"
	_ "go.trai.ch/compat/internal/adapters/diskcache"
	_ "go.trai.ch/compat/internal/adapters/feeds"
	_ "go.trai.ch/compat/internal/adapters/fs"
	_ "go.trai.ch/compat/internal/adapters/logger"
	_ "go.trai.ch/compat/internal/adapters/nuget"
	// Register app and engine nodes.
	_ "go.trai.ch/compat/internal/app"
	_ "go.trai.ch/compat/internal/engine/checker"
	_ "go.trai.ch/compat/internal/engine/resolver"
)
