package config

import (
	"fmt"
	"strings"
)

// UIConfig holds the browser form settings
type UIConfig struct {
	Enabled   bool   `env:"UI_ENABLED" yaml:"enabled" default:"true"`
	MountPath string `env:"UI_MOUNT_PATH" yaml:"mount_path" default:"/gui"`
	Title     string `env:"UI_TITLE" yaml:"title" default:"TedAk AI Email Assistant"`
}

// Validate checks the mount path.
func (u UIConfig) Validate() error {
	if !u.Enabled {
		return nil
	}
	if !strings.HasPrefix(u.MountPath, "/") || u.MountPath == "/" || strings.HasPrefix(u.MountPath, "/email") {
		return fmt.Errorf("ui mount_path must be a sub-path such as /gui, got %q", u.MountPath)
	}
	return nil
}
