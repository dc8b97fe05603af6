package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/hygie/internal/models"
	"gopkg.in/yaml.v3"
)

// ParseProfileFile reads an athlete profile written in TOML (.toml) or YAML (.yaml, .yml).
func ParseProfileFile(path string) (*models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &profile); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &profile); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported profile format %q, use .toml or .yaml", ext)
	}

	return &profile, nil
}

// ParsePlanFile reads a workout plan written in TOML or YAML.
func ParsePlanFile(path string) (*models.WorkoutPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan models.WorkoutPlan
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &plan)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &plan)
	default:
		err = fmt.Errorf("unsupported plan format %q, use .toml or .yaml", ext)
	}
	if err != nil {
		return nil, err
	}

	return &plan, nil
}
