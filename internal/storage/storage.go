package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/misterclayt0n/hygie/internal/config"
	"github.com/misterclayt0n/hygie/internal/models"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

var ErrProfileNotFound = errors.New("profile not found")

// cacheTTL bounds how stale a cached profile can be when another process writes the database.
const cacheTTL = 300 // seconds

// Storage keeps one JSON document per athlete profile.
type Storage struct {
	DB    *sql.DB
	cache *freecache.Cache
}

// Open connects to a Turso/libsql database for libsql://, https:// and wss:// URLs and to a local
// sqlite file otherwise, then makes sure the schema exists.
func Open(cfg config.DBConfig) (*Storage, error) {
	driver := driverFor(cfg.ConnectionString)
	db, err := sql.Open(driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", redact(cfg.ConnectionString), err)
	}

	if err := initializeDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	s := &Storage{DB: db}
	if cfg.CacheMB > 0 {
		s.cache = freecache.NewCache(cfg.CacheMB * 1024 * 1024)
	}

	logrus.WithField("driver", driver).Debugln("database ready")
	return s, nil
}

func driverFor(conn string) string {
	for _, prefix := range []string{"libsql://", "https://", "http://", "wss://", "ws://"} {
		if strings.HasPrefix(conn, prefix) {
			return "libsql"
		}
	}
	return "sqlite"
}

// redact drops the query string, which carries the auth token of remote databases.
func redact(conn string) string {
	if i := strings.Index(conn, "?"); i >= 0 {
		return conn[:i]
	}
	return conn
}

func initializeDB(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS profiles (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            data TEXT NOT NULL,
            updated_at TEXT NOT NULL
        );
    `)
	return err
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// Load returns the profile stored under id, or ErrProfileNotFound.
func (s *Storage) Load(ctx context.Context, id string) (*models.Profile, error) {
	if s.cache != nil {
		if data, err := s.cache.Get([]byte(id)); err == nil {
			var p models.Profile
			if err := json.Unmarshal(data, &p); err == nil {
				return &p, nil
			}
		}
	}

	var data string
	err := s.DB.QueryRowContext(ctx, "SELECT data FROM profiles WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrProfileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", id, err)
	}

	var p models.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", id, err)
	}
	s.remember(id, []byte(data))
	return &p, nil
}

// Upsert merges partial into the stored profile with the same id (a new profile when the id is
// empty or unknown) and returns every stored profile.
func (s *Storage) Upsert(ctx context.Context, partial *models.Profile) ([]*models.Profile, error) {
	if partial == nil {
		return nil, errors.New("upsert: nil profile")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := partial.ID
	if id == "" {
		id = uuid.New().String()
	}

	base := &models.Profile{ID: id}
	var existing string
	err = tx.QueryRowContext(ctx, "SELECT data FROM profiles WHERE id = ?", id).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("failed to read profile %s: %w", id, err)
	default:
		if err := json.Unmarshal([]byte(existing), base); err != nil {
			return nil, fmt.Errorf("failed to decode profile %s: %w", id, err)
		}
	}

	merged, err := MergeProfile(base, partial)
	if err != nil {
		return nil, fmt.Errorf("failed to merge profile %s: %w", id, err)
	}
	merged.ID = id

	data, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile %s: %w", id, err)
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO profiles (id, name, data, updated_at) VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET name = excluded.name, data = excluded.data, updated_at = excluded.updated_at
    `, id, merged.Name, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to save profile %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit profile %s: %w", id, err)
	}
	s.forget(id)

	return s.List(ctx)
}

// List returns every stored profile ordered by name.
func (s *Storage) List(ctx context.Context) ([]*models.Profile, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT data FROM profiles ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		var p models.Profile
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("failed to decode profile: %w", err)
		}
		profiles = append(profiles, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return profiles, nil
}

func (s *Storage) remember(id string, data []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set([]byte(id), data, cacheTTL); err != nil {
		// too large for the cache, read it from the database next time
		logrus.WithError(err).WithField("profile", id).Debugln("profile not cached")
	}
}

func (s *Storage) forget(id string) {
	if s.cache != nil {
		s.cache.Del([]byte(id))
	}
}
