// ABOUTME: Standard filesystem paths for streamtable configuration
// ABOUTME: ~/.streamtable/config.yaml is global, .streamtable/config.yaml is project-local

package config

import (
	"os"
	"path/filepath"
)

const (
	dirName  = ".streamtable"
	fileName = "config.yaml"
)

// GlobalDir returns the user-global config directory (~/.streamtable/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", dirName)
	}
	return filepath.Join(home, dirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), fileName)
}

// ProjectConfigFile returns the path to the config file under projectRoot.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(projectRoot, dirName, fileName)
}

// DefaultPaths returns the files Load reads when no explicit config is
// given, lowest precedence first.
func DefaultPaths(projectRoot string) []string {
	return []string{GlobalConfigFile(), ProjectConfigFile(projectRoot)}
}
