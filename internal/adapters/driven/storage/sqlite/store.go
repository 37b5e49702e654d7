package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/recall-labs/recall-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Store is a SQLite-based storage for interaction history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.recall/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".recall", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// InteractionStore returns an InteractionStore interface backed by this store.
func (s *Store) InteractionStore() driven.InteractionStore {
	return &interactionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_interactions.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Interaction Store ====================

// interactionStore implements driven.InteractionStore.
type interactionStore struct {
	store *Store
}

var _ driven.InteractionStore = (*interactionStore)(nil)

// SaveInteraction stores a completed interaction. References are
// serialised as JSON so the snapshot survives document deletion.
func (s *interactionStore) SaveInteraction(ctx context.Context, interaction *domain.Interaction) error {
	if interaction == nil {
		return domain.ErrInvalidInput
	}
	if interaction.OwnerID == "" {
		return fmt.Errorf("interaction has no owner: %w", domain.ErrInvalidInput)
	}

	references := interaction.References
	if references == nil {
		references = []domain.Reference{}
	}
	refsJSON, err := json.Marshal(references)
	if err != nil {
		return fmt.Errorf("marshalling references: %w", err)
	}

	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO interactions (id, owner_id, question, answer, refs, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, interaction.ID, interaction.OwnerID, interaction.Question,
		interaction.Answer, string(refsJSON), interaction.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving interaction: %w", storeErr(err))
	}
	return nil
}

// ListInteractions returns the owner's interactions, newest first.
func (s *interactionStore) ListInteractions(ctx context.Context, ownerID string, limit int) ([]domain.Interaction, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id required: %w", domain.ErrInvalidInput)
	}

	query := `
		SELECT id, owner_id, question, answer, refs, created_at
		FROM interactions
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC
	`
	args := []any{ownerID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying interactions: %w", storeErr(err))
	}
	defer rows.Close()

	var interactions []domain.Interaction
	for rows.Next() {
		var interaction domain.Interaction
		var refsJSON string
		var createdAt sql.NullTime
		if err := rows.Scan(&interaction.ID, &interaction.OwnerID, &interaction.Question,
			&interaction.Answer, &refsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}

		if err := json.Unmarshal([]byte(refsJSON), &interaction.References); err != nil {
			return nil, fmt.Errorf("unmarshalling references: %w", err)
		}
		if createdAt.Valid {
			interaction.CreatedAt = createdAt.Time
		}

		interactions = append(interactions, interaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating interactions: %w", storeErr(err))
	}

	return interactions, nil
}

// Close is a no-op; the parent Store owns the connection.
func (s *interactionStore) Close() error {
	return nil
}

// storeErr tags infrastructure failures with the domain sentinel,
// leaving already-classified errors untouched.
func storeErr(err error) error {
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
