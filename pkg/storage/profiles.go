package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// CreateProfile inserts a child profile for the given parent. The
// caller is expected to have filled MaturityLevel (defaulted from age
// when the parent did not set one).
func (d *DB) CreateProfile(ctx context.Context, p Profile) (Profile, error) {
	p.ID = uuid.New().String()
	p.CreatedAt = time.Now().UTC()

	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO profiles(id, parent_id, name, age, maturity_level, blocked_sites, whitelisted_sites, created_at)
		 VALUES(?,?,?,?,?,?,?,?)`,
		p.ID, p.ParentID, p.Name, p.Age, p.MaturityLevel,
		encodeList(p.BlockedSites), encodeList(p.WhitelistedSites), formatTime(p.CreatedAt))
	if err != nil {
		return Profile{}, err
	}
	if p.BlockedSites == nil {
		p.BlockedSites = []string{}
	}
	if p.WhitelistedSites == nil {
		p.WhitelistedSites = []string{}
	}
	return p, nil
}

// ListProfiles returns all profiles owned by a parent.
func (d *DB) ListProfiles(ctx context.Context, parentID string) ([]Profile, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, parent_id, name, age, maturity_level, blocked_sites, whitelisted_sites, created_at
		 FROM profiles WHERE parent_id = ? ORDER BY created_at, id`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// GetProfile returns a single profile, enforcing parent ownership.
func (d *DB) GetProfile(ctx context.Context, id, parentID string) (Profile, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, parent_id, name, age, maturity_level, blocked_sites, whitelisted_sites, created_at
		 FROM profiles WHERE id = ? AND parent_id = ?`, id, parentID)
	if err != nil {
		return Profile{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Profile{}, err
		}
		return Profile{}, ErrNotFound
	}
	return scanProfile(rows)
}

// UpdateProfile replaces the mutable fields of a profile.
func (d *DB) UpdateProfile(ctx context.Context, p Profile) (Profile, error) {
	res, err := d.sql.ExecContext(ctx,
		`UPDATE profiles SET name = ?, age = ?, maturity_level = ?, blocked_sites = ?, whitelisted_sites = ?
		 WHERE id = ? AND parent_id = ?`,
		p.Name, p.Age, p.MaturityLevel,
		encodeList(p.BlockedSites), encodeList(p.WhitelistedSites),
		p.ID, p.ParentID)
	if err != nil {
		return Profile{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Profile{}, err
	}
	if n == 0 {
		return Profile{}, ErrNotFound
	}
	return d.GetProfile(ctx, p.ID, p.ParentID)
}

// DeleteProfile removes a profile and cascades to its content logs.
func (d *DB) DeleteProfile(ctx context.Context, id, parentID string) error {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var res sql.Result
	res, err = tx.ExecContext(ctx, `DELETE FROM profiles WHERE id = ? AND parent_id = ?`, id, parentID)
	if err != nil {
		return err
	}
	var n int64
	n, err = res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = ErrNotFound
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM content_logs WHERE profile_id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var (
		p                  Profile
		blocked, whitelist string
		createdAt          string
	)
	err := row.Scan(&p.ID, &p.ParentID, &p.Name, &p.Age, &p.MaturityLevel, &blocked, &whitelist, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, err
	}
	p.BlockedSites = decodeList(blocked)
	p.WhitelistedSites = decodeList(whitelist)
	p.CreatedAt = parseTime(createdAt)
	return p, nil
}
