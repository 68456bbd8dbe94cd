// ABOUTME: Table configuration loaded from YAML, global then project-local, project winning
// ABOUTME: Strict decoding: unknown keys are errors so typos surface at startup

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/streamtable/internal/log"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// ColumnSpec is one column entry in the config file.
type ColumnSpec struct {
	Name  string `yaml:"name"`
	Width int    `yaml:"width"`
}

// File is the on-disk configuration.
type File struct {
	// Command is run by the CLI when no -exec flag is given; its stdout
	// becomes the row stream.
	Command      string              `yaml:"command,omitempty"`
	Columns      []ColumnSpec        `yaml:"columns,omitempty"`
	MaxRows      int                 `yaml:"max_rows,omitempty"`
	HeaderColor  string              `yaml:"header_color,omitempty"`
	PollInterval string              `yaml:"poll_interval,omitempty"`
	Keybindings  map[string][]string `yaml:"keybindings,omitempty"`
}

// Load reads each existing file in paths and merges them in order, later
// files overriding earlier ones. Missing files are skipped.
func Load(paths ...string) (*File, error) {
	merged := &File{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		f, err := LoadFile(p)
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("config: %s not found, skipping", p)
			continue
		}
		if err != nil {
			return nil, err
		}
		log.Debug("config: loaded %s", p)
		merged = merge(merged, f)
	}
	ResolveEnvVars(merged)
	return merged, nil
}

// LoadFile reads a single config file. A missing file is an error.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes YAML config. Empty input is an empty config.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &f, nil
}

// merge overlays non-zero fields of project onto global. Columns are
// replaced as a whole; keybindings are replaced per action.
func merge(global, project *File) *File {
	if global == nil {
		global = &File{}
	}
	if project == nil {
		return global
	}

	result := *global
	if project.Command != "" {
		result.Command = project.Command
	}
	if len(project.Columns) > 0 {
		result.Columns = project.Columns
	}
	if project.MaxRows != 0 {
		result.MaxRows = project.MaxRows
	}
	if project.HeaderColor != "" {
		result.HeaderColor = project.HeaderColor
	}
	if project.PollInterval != "" {
		result.PollInterval = project.PollInterval
	}
	if len(project.Keybindings) > 0 {
		kb := make(map[string][]string, len(global.Keybindings)+len(project.Keybindings))
		maps.Copy(kb, global.Keybindings)
		maps.Copy(kb, project.Keybindings)
		result.Keybindings = kb
	}
	return &result
}
