package config

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const fileName = "difficulties.yaml"

//go:embed defaults/difficulties.yaml
var defaultDifficultiesYAML []byte

// Default returns the built-in levels
func Default() Difficulties {
	difficulties, err := Parse(defaultDifficultiesYAML)
	if err != nil {
		panic(err)
	}
	return difficulties
}

// Parse decodes and validates a difficulties document
func Parse(data []byte) (Difficulties, error) {
	var difficulties Difficulties
	if err := yaml.UnmarshalStrict(data, &difficulties); err != nil {
		return Difficulties{}, errors.Wrap(err, "config: cannot parse difficulties")
	}
	if err := difficulties.Validate(); err != nil {
		return Difficulties{}, errors.Wrap(err, "config")
	}
	return difficulties, nil
}

// Load reads difficulty levels.
// Search order: customPath -> ~/.sapper/difficulties.yaml -> ./configs/difficulties.yaml -> embedded default
//
// A custom path must exist and parse. The other locations are skipped with a
// warning when they are unreadable or invalid.
func Load(customPath string) (Difficulties, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Difficulties{}, errors.Wrapf(err, "config: cannot read %s", customPath)
		}
		difficulties, err := Parse(data)
		if err != nil {
			return Difficulties{}, errors.Wrap(err, customPath)
		}
		return difficulties, nil
	}

	candidates := []string{filepath.Join("configs", fileName)}
	if userPath := userConfigPath(); userPath != "" {
		candidates = append([]string{userPath}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		difficulties, err := Parse(data)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  path,
				"error": err,
			}).Warn("ignoring invalid difficulties file")
			continue
		}

		logrus.WithField("path", path).Debug("loaded difficulties")
		return difficulties, nil
	}

	return Default(), nil
}

// userConfigPath returns the path to the user's difficulties file, or empty
// if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sapper", fileName)
}
