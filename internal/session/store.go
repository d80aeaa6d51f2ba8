package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/lalajistore/vendor-gateway/internal/utils"
)

// Session is an authenticated vendor session. Token holds the decrypted
// marketplace API token and is never persisted in clear.
type Session struct {
	ID        string    `db:"id"`
	VendorID  string    `db:"vendor_id"`
	Email     string    `db:"email"`
	Token     string    `db:"-"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	vendor_id  TEXT NOT NULL,
	email      TEXT NOT NULL DEFAULT '',
	token_enc  BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL,
	expires_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);
`

// Open opens (creating if necessary) the local session database.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping session store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}
	return db, nil
}

// Store persists vendor sessions with the marketplace token encrypted at
// rest. It implements the session provider used by middleware and services.
type Store struct {
	db  *sqlx.DB
	key []byte
	ttl time.Duration
}

// NewStore constructs a Store over an opened session database.
func NewStore(db *sqlx.DB, encryptionKey []byte, ttl time.Duration) *Store {
	return &Store{db: db, key: encryptionKey, ttl: ttl}
}

// Create inserts a new session for the vendor and returns it with a fresh id.
func (s *Store) Create(vendorID, email, token string) (*Session, error) {
	enc, err := encryptToken(token, s.key)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sess := &Session{
		ID:        uuid.New().String(),
		VendorID:  vendorID,
		Email:     email,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	_, err = s.db.Exec(
		`INSERT INTO sessions (id, vendor_id, email, token_enc, created_at, expires_at) VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.VendorID, sess.Email, enc, sess.CreatedAt, sess.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return sess, nil
}

// Get loads a session by id, decrypting the marketplace token. Expired
// sessions are deleted on read and reported as ErrSessionExpired.
func (s *Store) Get(id string) (*Session, error) {
	row := s.db.QueryRowx(
		`SELECT id, vendor_id, email, token_enc, created_at, expires_at FROM sessions WHERE id = ?`, id,
	)

	var sess Session
	var enc []byte
	if err := row.Scan(&sess.ID, &sess.VendorID, &sess.Email, &enc, &sess.CreatedAt, &sess.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrSessionNotFound
		}
		return nil, err
	}

	if time.Now().UTC().After(sess.ExpiresAt) {
		_ = s.Delete(id)
		return nil, utils.ErrSessionExpired
	}

	token, err := decryptToken(enc, s.key)
	if err != nil {
		return nil, err
	}
	sess.Token = token
	return &sess, nil
}

// Delete removes a session. Used for logout and forced invalidation when
// the marketplace rejects the stored token.
func (s *Store) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// Latest returns the most recently created live session. Background
// refreshes borrow its marketplace token when no request is in flight.
func (s *Store) Latest() (*Session, error) {
	row := s.db.QueryRowx(
		`SELECT id FROM sessions WHERE expires_at > ? ORDER BY created_at DESC LIMIT 1`,
		time.Now().UTC(),
	)
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrSessionNotFound
		}
		return nil, err
	}
	return s.Get(id)
}

// PurgeExpired removes all expired sessions and reports how many went.
func (s *Store) PurgeExpired() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
