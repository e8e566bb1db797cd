package repos

import "github.com/jmoiron/sqlx"

// SettingsRepo reads the key/value settings table. Services wrap it in
// config.Settings for the TTL cache.
type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) All() (map[string]string, error) {
	type kv struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}
	var rows []kv
	if err := r.db.Select(&rows, `SELECT key, value FROM settings`); err != nil {
		return nil, err
	}
	m := make(map[string]string, len(rows))
	for _, row := range rows {
		m[row.Key] = row.Value
	}
	return m, nil
}

func (r *SettingsRepo) Set(key, value string) error {
	_, err := r.db.Exec(`
	  INSERT INTO settings(key,value) VALUES(?,?)
	  ON CONFLICT(key) DO UPDATE SET value=excluded.value
	`, key, value)
	return err
}
