// Package buildinfo holds version information injected at build time via ldflags:
//
//	-X github.com/mechtifs/lrcd-indicator/internal/buildinfo.Version=v0.1.0
package buildinfo

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
