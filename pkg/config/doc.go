// Package config loads the emulator's YAML configuration file.
//
// Precedence is flag over file over default: the CLI loads the file
// (when present), then lets explicit flags override individual fields.
package config
