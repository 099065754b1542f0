// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/m2/internal/adapters/cas"
	_ "go.trai.ch/m2/internal/adapters/config"
	_ "go.trai.ch/m2/internal/adapters/content"
	_ "go.trai.ch/m2/internal/adapters/lock"
	_ "go.trai.ch/m2/internal/adapters/logger"
	_ "go.trai.ch/m2/internal/adapters/maven"
	_ "go.trai.ch/m2/internal/adapters/telemetry"
	_ "go.trai.ch/m2/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/m2/internal/app"
	_ "go.trai.ch/m2/internal/engine/collect"
	_ "go.trai.ch/m2/internal/engine/materialize"
	_ "go.trai.ch/m2/internal/engine/publish"
	_ "go.trai.ch/m2/internal/engine/session"
)
