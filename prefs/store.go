// Package prefs keeps user preferences in a SQLite database. Values are
// scoped by document origin so every site remembers its own choices.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"tgrab/misc"
)

// KeyLastFormat stores id of the last used export format.
const KeyLastFormat = "grab-table-format"

const schema = `CREATE TABLE IF NOT EXISTS preferences (
	origin TEXT NOT NULL,
	key    TEXT NOT NULL,
	value  TEXT NOT NULL,
	PRIMARY KEY (origin, key)
);`

// Store is preference storage bound to a single origin. It is not safe for
// concurrent use.
type Store struct {
	conn   *sqlite.Conn
	origin string
	log    *zap.Logger
}

// DefaultPath returns location of preference database in user configuration
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to locate user configuration directory: %w", err)
	}
	return filepath.Join(dir, misc.GetAppName(), "preferences.db"), nil
}

// Open opens (creating when necessary) preference database at path. Empty
// path selects DefaultPath.
func Open(path, origin string, log *zap.Logger) (*Store, error) {
	if len(path) == 0 {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("unable to create preferences directory: %w", err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenWAL)
	if err != nil {
		return nil, fmt.Errorf("unable to open preferences '%s': %w", path, err)
	}
	if err := sqlitex.ExecuteTransient(conn, schema, nil); err != nil {
		return nil, multierr.Append(fmt.Errorf("unable to prepare preferences '%s': %w", path, err), conn.Close())
	}

	log.Debug("Preferences opened", zap.String("path", path), zap.String("origin", origin))
	return &Store{conn: conn, origin: origin, log: log}, nil
}

// Close releases database.
func (s *Store) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// Get returns value of key for store origin.
func (s *Store) Get(key string) (value string, found bool, err error) {
	err = sqlitex.Execute(s.conn, `SELECT value FROM preferences WHERE origin = ? AND key = ?`,
		&sqlitex.ExecOptions{
			Args: []any{s.origin, key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				value, found = stmt.ColumnText(0), true
				return nil
			},
		})
	if err != nil {
		return "", false, fmt.Errorf("unable to read preference '%s': %w", key, err)
	}
	return value, found, nil
}

// Set stores value of key for store origin.
func (s *Store) Set(key, value string) error {
	err := sqlitex.Execute(s.conn,
		`INSERT INTO preferences (origin, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (origin, key) DO UPDATE SET value = excluded.value`,
		&sqlitex.ExecOptions{Args: []any{s.origin, key, value}})
	if err != nil {
		return fmt.Errorf("unable to store preference '%s': %w", key, err)
	}
	s.log.Debug("Preference stored", zap.String("origin", s.origin), zap.String("key", key), zap.String("value", value))
	return nil
}

// LastFormat returns id of the last used export format.
func (s *Store) LastFormat() (string, bool, error) {
	return s.Get(KeyLastFormat)
}

// SetLastFormat remembers id of the last used export format.
func (s *Store) SetLastFormat(id string) error {
	return s.Set(KeyLastFormat, id)
}
