package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/matt-g-everett/scenetx/scene"
	"github.com/matt-g-everett/scenetx/util"
)

// ErrNotFound is returned when no scene has the requested name.
var ErrNotFound = errors.New("scene not found")

// Record describes a saved scene without its document.
type Record struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	ObjectCount int    `json:"objectCount"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Store is a library of exported scene documents kept in scenes.db.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) scenes.db under dataDir and applies the schema.
func OpenStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "scenes.db")
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("open scenes db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate scenes db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores doc under name, replacing any scene already saved with it.
func (s *Store) Save(name string, doc scene.Document) (*Record, error) {
	if name == "" {
		return nil, errors.New("scene name is required")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO scenes (id, name, version, object_count, document) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		     version = excluded.version,
		     object_count = excluded.object_count,
		     document = excluded.document,
		     updated_at = datetime('now')`,
		util.NewID("scene"), name, doc.Version, len(doc.Objects), string(data),
	)
	if err != nil {
		return nil, fmt.Errorf("save scene %q: %w", name, err)
	}

	return s.Get(name)
}

// Get returns the record of a saved scene.
func (s *Store) Get(name string) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT id, name, version, object_count, created_at, updated_at FROM scenes WHERE name = ?`,
		name,
	)
	var r Record
	err := row.Scan(&r.ID, &r.Name, &r.Version, &r.ObjectCount, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("scan scene: %w", err)
	}
	return &r, nil
}

// Load returns the document saved under name.
func (s *Store) Load(name string) (scene.Document, error) {
	var data string
	err := s.db.QueryRow(`SELECT document FROM scenes WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return scene.Document{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return scene.Document{}, fmt.Errorf("load scene %q: %w", name, err)
	}

	var doc scene.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return scene.Document{}, fmt.Errorf("decode scene %q: %w", name, err)
	}
	return doc, nil
}

// List returns every saved scene ordered by name.
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, name, version, object_count, created_at, updated_at FROM scenes ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.Version, &r.ObjectCount, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan scene: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Delete removes a saved scene.
func (s *Store) Delete(name string) error {
	result, err := s.db.Exec(`DELETE FROM scenes WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete scene %q: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete scene %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}
