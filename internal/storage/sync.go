package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/misterclayt0n/hygie/internal/models"
	"github.com/misterclayt0n/hygie/internal/utils"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// ExportProfileToTOML writes the profile stored under id to outputPath as TOML.
func (s *Storage) ExportProfileToTOML(ctx context.Context, id, outputPath string) error {
	profile, err := s.Load(ctx, id)
	if err != nil {
		return err
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(profile); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}

	// Make the output path absolute relative to the current directory.
	outputPath, err = filepath.Abs(outputPath)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}

	return nil
}

// GetProfileExportPath returns where a profile export goes by default:
// ~/.config/hygie/exports/<id>.toml.
func GetProfileExportPath(id string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "hygie", "exports")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, id+".toml"), nil
}

// ImportProfileFromFile reads a TOML or YAML profile and merges it into the store. A profile without
// an id gets a new one. The stored result is returned.
func (s *Storage) ImportProfileFromFile(ctx context.Context, filePath string) (*models.Profile, error) {
	profile, err := utils.ParseProfileFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", filePath, err)
	}
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	for _, record := range profile.Sessions {
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", profile.ID, err)
		}
	}

	if _, err := s.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.Load(ctx, profile.ID)
}
