package repos

import (
	"coursiva/internal/domain"

	"github.com/jmoiron/sqlx"
)

type RegistryRepo struct{ db *sqlx.DB }

func NewRegistryRepo(db *sqlx.DB) *RegistryRepo { return &RegistryRepo{db: db} }

// List returns every registry row, placeholders included. Filtering to the
// active set is the aggregator's job, not the store's.
func (r *RegistryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, display_name, table_id, endpoint_url, image_url, contact_number,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM registry
	  ORDER BY display_name
	`)
	return out, err
}

func (r *RegistryRepo) Upsert(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO registry(id, display_name, table_id, endpoint_url, image_url, contact_number, updated_at)
	  VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET
	    display_name=excluded.display_name,
	    table_id=excluded.table_id,
	    endpoint_url=excluded.endpoint_url,
	    image_url=excluded.image_url,
	    contact_number=excluded.contact_number,
	    updated_at=CURRENT_TIMESTAMP
	`, c.ID, c.DisplayName, c.TableID, c.EndpointURL, c.ImageURL, c.ContactNumber)
	return err
}
