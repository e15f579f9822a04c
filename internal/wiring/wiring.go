// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/carton/internal/adapters/archive"
	_ "go.trai.ch/carton/internal/adapters/cas"
	_ "go.trai.ch/carton/internal/adapters/classfile"
	_ "go.trai.ch/carton/internal/adapters/classpath"
	_ "go.trai.ch/carton/internal/adapters/config"
	_ "go.trai.ch/carton/internal/adapters/fs"
	_ "go.trai.ch/carton/internal/adapters/loader"
	_ "go.trai.ch/carton/internal/adapters/logger"
	_ "go.trai.ch/carton/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/carton/internal/app"
	_ "go.trai.ch/carton/internal/engine/closure"
)
