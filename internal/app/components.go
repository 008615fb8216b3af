package app

import "go.trai.ch/compat/internal/core/ports"

// Components holds what the CLI needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}
