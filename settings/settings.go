// Package settings loads the optional user settings file.
//
// Settings live in settings.yaml under the config directory and are edited by
// hand; there is no save path. A missing file yields defaults, never an error.
package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultEnvironment tags records created on this host when no environment
// is configured.
const DefaultEnvironment = "local"

// Settings holds user-configurable options.
type Settings struct {
	// Environment names the runtime/host environment that creates new
	// work directory records. Informational; stored on each record.
	Environment string `yaml:"environment"`

	// Debug enables debug-level logging by default, without the --debug flag.
	Debug bool `yaml:"debug"`
}

// Default returns the settings used when no settings file exists.
func Default() *Settings {
	return &Settings{Environment: DefaultEnvironment}
}

// Load reads and parses the settings file at path.
// Returns defaults if the file does not exist.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if s.Environment == "" {
		s.Environment = DefaultEnvironment
	}

	return s, nil
}
