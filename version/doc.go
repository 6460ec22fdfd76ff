// Package version exposes the fuel build version, set at compile time via
// -ldflags or read from the module build info:
//
//	go build -ldflags "-X github.com/kbukum/fuel/version.Version=1.0.0"
package version
