package profile

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	profile_id  TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	birthdate   TEXT,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trait_versions (
	version_id  TEXT PRIMARY KEY,
	parent_id   TEXT,
	profile_id  TEXT NOT NULL,
	traits      BLOB NOT NULL,
	source      TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	FOREIGN KEY (profile_id) REFERENCES profiles(profile_id),
	FOREIGN KEY (parent_id) REFERENCES trait_versions(version_id)
);

CREATE INDEX IF NOT EXISTS idx_trait_versions_profile ON trait_versions(profile_id, created_at);

CREATE TABLE IF NOT EXISTS active_traits (
	profile_id  TEXT PRIMARY KEY,
	version_id  TEXT NOT NULL,
	FOREIGN KEY (profile_id) REFERENCES profiles(profile_id),
	FOREIGN KEY (version_id) REFERENCES trait_versions(version_id)
);
`

// #endregion schema

// #region store-struct
// Store keeps profiles and their versioned trait vectors in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB so the snapshot store can share it.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion constructor

// #region profiles
// CreateProfile inserts a new profile with no trait versions yet.
func (s *Store) CreateProfile(name, birthdate string) (Profile, error) {
	p := Profile{
		ProfileID: uuid.New().String(),
		Name:      name,
		Birthdate: birthdate,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO profiles (profile_id, name, birthdate, created_at) VALUES (?, ?, ?, ?)`,
		p.ProfileID, p.Name, nullIfEmpty(p.Birthdate), p.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Profile{}, fmt.Errorf("insert profile: %w", err)
	}
	return p, nil
}

// GetProfile retrieves a profile by ID.
func (s *Store) GetProfile(id string) (Profile, error) {
	var p Profile
	var birthdate sql.NullString
	var createdStr string
	err := s.db.QueryRow(
		`SELECT profile_id, name, birthdate, created_at FROM profiles WHERE profile_id = ?`, id,
	).Scan(&p.ProfileID, &p.Name, &birthdate, &createdStr)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("get profile %s: %w", id, err)
	}
	p.Birthdate = birthdate.String
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return p, nil
}

// ListProfiles returns the most recently created profiles.
func (s *Store) ListProfiles(limit int) ([]Profile, error) {
	rows, err := s.db.Query(
		`SELECT profile_id, name, birthdate, created_at FROM profiles ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var p Profile
		var birthdate sql.NullString
		var createdStr string
		if err := rows.Scan(&p.ProfileID, &p.Name, &birthdate, &createdStr); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		p.Birthdate = birthdate.String
		p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, p)
	}
	return out, rows.Err()
}

// #endregion profiles

// #region commit-traits
// CommitTraits appends a trait version for the profile and makes it active.
// The parent is the profile's current active version, if any.
func (s *Store) CommitTraits(profileID string, traits TraitVector, source Source) (TraitRecord, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return TraitRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM profiles WHERE profile_id = ?`, profileID).Scan(&exists); err != nil {
		return TraitRecord{}, fmt.Errorf("check profile: %w", err)
	}
	if exists == 0 {
		return TraitRecord{}, fmt.Errorf("profile %s: %w", profileID, ErrNotFound)
	}

	var parent sql.NullString
	err = tx.QueryRow(`SELECT version_id FROM active_traits WHERE profile_id = ?`, profileID).Scan(&parent)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return TraitRecord{}, fmt.Errorf("get active: %w", err)
	}

	rec := TraitRecord{
		VersionID: uuid.New().String(),
		ParentID:  parent.String,
		ProfileID: profileID,
		Traits:    traits,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}

	_, err = tx.Exec(
		`INSERT INTO trait_versions (version_id, parent_id, profile_id, traits, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.VersionID, nullIfEmpty(rec.ParentID), rec.ProfileID, encodeTraits(rec.Traits),
		string(rec.Source), rec.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return TraitRecord{}, fmt.Errorf("insert version: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO active_traits (profile_id, version_id) VALUES (?, ?)
		 ON CONFLICT(profile_id) DO UPDATE SET version_id = excluded.version_id`,
		profileID, rec.VersionID,
	)
	if err != nil {
		return TraitRecord{}, fmt.Errorf("set active: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return TraitRecord{}, fmt.Errorf("commit: %w", err)
	}
	return rec, nil
}

// #endregion commit-traits

// #region get-current
// GetCurrent reads the active trait version of a profile.
func (s *Store) GetCurrent(profileID string) (TraitRecord, error) {
	var versionID string
	err := s.db.QueryRow(`SELECT version_id FROM active_traits WHERE profile_id = ?`, profileID).Scan(&versionID)
	if errors.Is(err, sql.ErrNoRows) {
		return TraitRecord{}, fmt.Errorf("active traits for %s: %w", profileID, ErrNotFound)
	}
	if err != nil {
		return TraitRecord{}, fmt.Errorf("get active: %w", err)
	}
	return s.GetVersion(versionID)
}

// #endregion get-current

// #region get-version
// GetVersion retrieves a specific trait version by ID.
func (s *Store) GetVersion(id string) (TraitRecord, error) {
	row := s.db.QueryRow(
		`SELECT version_id, parent_id, profile_id, traits, source, created_at
		 FROM trait_versions WHERE version_id = ?`, id,
	)
	rec, err := scanVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return TraitRecord{}, fmt.Errorf("version %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return TraitRecord{}, fmt.Errorf("get version %s: %w", id, err)
	}
	return rec, nil
}

// #endregion get-version

// #region rollback
// Rollback points the profile's active version at an earlier version of the same profile.
func (s *Store) Rollback(profileID, targetVersionID string) error {
	var owner string
	err := s.db.QueryRow(
		`SELECT profile_id FROM trait_versions WHERE version_id = ?`, targetVersionID,
	).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("version %s: %w", targetVersionID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("check version: %w", err)
	}
	if owner != profileID {
		return fmt.Errorf("version %s belongs to profile %s, not %s", targetVersionID, owner, profileID)
	}

	_, err = s.db.Exec(`UPDATE active_traits SET version_id = ? WHERE profile_id = ?`, targetVersionID, profileID)
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// #endregion rollback

// #region list-versions
// ListVersions returns the most recent trait versions of a profile, newest first.
func (s *Store) ListVersions(profileID string, limit int) ([]TraitRecord, error) {
	rows, err := s.db.Query(
		`SELECT version_id, parent_id, profile_id, traits, source, created_at
		 FROM trait_versions WHERE profile_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`, profileID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var records []TraitRecord
	for rows.Next() {
		rec, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-versions

// #region helpers
// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type scanner interface {
	Scan(dest ...any) error
}

func scanVersion(row scanner) (TraitRecord, error) {
	var rec TraitRecord
	var parentID sql.NullString
	var blob []byte
	var source, createdStr string
	if err := row.Scan(&rec.VersionID, &parentID, &rec.ProfileID, &blob, &source, &createdStr); err != nil {
		return TraitRecord{}, err
	}
	rec.ParentID = parentID.String
	rec.Traits = decodeTraits(blob)
	rec.Source = Source(source)
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func encodeTraits(v TraitVector) []byte {
	buf := make([]byte, TraitDims*8)
	for i, f := range v {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return buf
}

func decodeTraits(b []byte) TraitVector {
	var v TraitVector
	for i := range v {
		if i*8+8 <= len(b) {
			v[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
		}
	}
	return v
}

// #endregion helpers
