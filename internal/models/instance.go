// Package models defines the data persisted by the indicator.
package models

import "time"

// InstanceInfo identifies the running indicator process.
// This corresponds to $XDG_CONFIG_HOME/lrcd-indicator/instance.yaml.
type InstanceInfo struct {
	Version   int       `yaml:"version"`
	PID       int       `yaml:"pid"`
	Source    string    `yaml:"source"`
	Tray      bool      `yaml:"tray"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewInstanceInfo creates instance info for the current process.
func NewInstanceInfo(pid int, source string, tray bool) *InstanceInfo {
	return &InstanceInfo{
		Version:   1,
		PID:       pid,
		Source:    source,
		Tray:      tray,
		StartedAt: time.Now().UTC(),
	}
}
