package repos

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

const cacheVersionKey = "catalog_cache_version"

// StateRepo is the narrow get/set interface over the app_state table. The
// cache-version token lives here: strictly increasing, compared only for
// inequality, never interpreted as a revision id.
type StateRepo struct{ db *sqlx.DB }

func NewStateRepo(db *sqlx.DB) *StateRepo { return &StateRepo{db: db} }

// CacheVersion returns the current token, initializing it on first use.
func (r *StateRepo) CacheVersion() (string, error) {
	var v string
	err := r.db.Get(&v, `SELECT value FROM app_state WHERE key=?`, cacheVersionKey)
	if err == sql.ErrNoRows {
		return r.BumpCacheVersion()
	}
	return v, err
}

// BumpCacheVersion writes a new token and returns it. The new value is
// max(now-derived, current+1): concurrent bumps may each move the token,
// which is harmless because consumers only compare for inequality.
func (r *StateRepo) BumpCacheVersion() (string, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var cur string
	if err := tx.Get(&cur, `SELECT value FROM app_state WHERE key=?`, cacheVersionKey); err != nil && err != sql.ErrNoRows {
		return "", err
	}

	next := time.Now().UnixMilli()
	if n, err := strconv.ParseInt(cur, 10, 64); err == nil && n >= next {
		next = n + 1
	}
	v := fmt.Sprintf("%d", next)

	if _, err := tx.Exec(`
	  INSERT INTO app_state(key,value) VALUES(?,?)
	  ON CONFLICT(key) DO UPDATE SET value=excluded.value
	`, cacheVersionKey, v); err != nil {
		return "", err
	}
	return v, tx.Commit()
}
