package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
	"github.com/wadjakorntonsri/linkpulse/pkg/ports"
	moderncsqlite "modernc.org/sqlite" // Local SQLite driver
	sqlite3 "modernc.org/sqlite/lib"
)

// CacheKeyPrefix namespaces cached published profiles.
const CacheKeyPrefix = "creator_profile_"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		owner_email TEXT NOT NULL UNIQUE,
		username TEXT,
		draft JSON NOT NULL,
		published JSON,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		published_at DATETIME
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_username ON profiles(username);

	CREATE TABLE IF NOT EXISTS profile_cache (
		cache_key TEXT PRIMARY KEY,
		payload JSON NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(query)
	return err
}

const profileColumns = `id, owner_email, draft, published, created_at, updated_at, published_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.ProfileRecord, error) {
	var rec domain.ProfileRecord
	var draftJSON []byte
	var publishedJSON []byte
	var publishedAt sql.NullTime

	if err := row.Scan(&rec.ID, &rec.OwnerEmail, &draftJSON, &publishedJSON, &rec.CreatedAt, &rec.UpdatedAt, &publishedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(draftJSON, &rec.Draft); err != nil {
		return nil, err
	}
	if len(publishedJSON) > 0 {
		var p domain.Profile
		if err := json.Unmarshal(publishedJSON, &p); err != nil {
			return nil, err
		}
		rec.Published = &p
	}
	if publishedAt.Valid {
		rec.PublishedAt = &publishedAt.Time
	}
	return &rec, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, rec *domain.ProfileRecord) error {
	query := `INSERT INTO profiles (owner_email, draft, created_at, updated_at) VALUES (?, ?, ?, ?)`

	draftJSON, err := json.Marshal(rec.Draft)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, rec.OwnerEmail, draftJSON, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = id
	return nil
}

func (r *SQLiteRepository) GetByOwner(ctx context.Context, ownerEmail string) (*domain.ProfileRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE owner_email = ?`, ownerEmail)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// GetByUsername looks a profile up by its published username.
func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*domain.ProfileRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE username = ?`, strings.ToLower(username))
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

func (r *SQLiteRepository) SaveDraft(ctx context.Context, rec *domain.ProfileRecord) error {
	draftJSON, err := json.Marshal(rec.Draft)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `UPDATE profiles SET draft = ?, updated_at = ? WHERE id = ?`, draftJSON, rec.UpdatedAt, rec.ID)
	return err
}

// Publish stores the record's published copy and claims its username.
func (r *SQLiteRepository) Publish(ctx context.Context, rec *domain.ProfileRecord) error {
	if rec.Published == nil {
		return domain.ErrInvalidProfile
	}

	draftJSON, err := json.Marshal(rec.Draft)
	if err != nil {
		return err
	}
	publishedJSON, err := json.Marshal(rec.Published)
	if err != nil {
		return err
	}

	query := `UPDATE profiles SET username = ?, draft = ?, published = ?, updated_at = ?, published_at = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query, rec.Published.Username, draftJSON, publishedJSON, rec.UpdatedAt, rec.PublishedAt, rec.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", domain.ErrUsernameTaken, rec.Published.Username)
	}
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var se *moderncsqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE"))
	}
	// libsql reports constraint failures as plain errors.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *SQLiteRepository) Dump(ctx context.Context) ([]domain.ProfileRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ProfileRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// --- Profile cache (local last-known-good copies) ---

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*domain.Profile, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM profile_cache WHERE cache_key = ?`, CacheKeyPrefix+id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p domain.Profile
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, id string, profile *domain.Profile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	query := `INSERT INTO profile_cache (cache_key, payload, updated_at) VALUES (?, ?, ?)
			  ON CONFLICT(cache_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query, CacheKeyPrefix+id, payload, time.Now())
	return err
}

// Ensure interface compliance
var (
	_ ports.ProfileRepository = (*SQLiteRepository)(nil)
	_ ports.ProfileCache      = (*SQLiteRepository)(nil)
)
