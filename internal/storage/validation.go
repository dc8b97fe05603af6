package storage

import (
	"context"
	"fmt"
)

func (s *Storage) ProfileExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM profiles WHERE id = ?)",
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check profile existence: %w", err)
	}

	return exists, nil
}

// ResolveProfileID accepts either a profile id or a profile name. Names must be unique.
func (s *Storage) ResolveProfileID(ctx context.Context, idOrName string) (string, error) {
	exists, err := s.ProfileExists(ctx, idOrName)
	if err != nil {
		return "", err
	}
	if exists {
		return idOrName, nil
	}

	rows, err := s.DB.QueryContext(ctx, "SELECT id FROM profiles WHERE name = ? LIMIT 2", idOrName)
	if err != nil {
		return "", fmt.Errorf("failed to look up profile %q: %w", idOrName, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("failed to scan profile id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%q: %w", idOrName, ErrProfileNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("several profiles are named %q, use the id", idOrName)
	}
}
