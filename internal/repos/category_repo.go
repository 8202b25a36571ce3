package repos

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sucree/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT id, name, image
  FROM categories
  ORDER BY name`)
	return out, err
}

func (r *CategoryRepo) Get(ctx context.Context, id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.GetContext(ctx, &c, `SELECT id, name, image FROM categories WHERE id = ?`, id)
	return c, err
}

func (r *CategoryRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM categories WHERE id = ?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	if c.ID == domain.AllCategoryID {
		return domain.Category{}, fmt.Errorf("%w: %q is reserved", domain.ErrInvalidOperation, c.ID)
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO categories(id, name, image, created_at) VALUES(?,?,?,?)`,
		c.ID, c.Name, c.Image, now()); err != nil {
		return domain.Category{}, err
	}
	return r.Get(ctx, c.ID)
}

// Update rewrites name and image. Missing rows yield sql.ErrNoRows.
func (r *CategoryRepo) Update(ctx context.Context, c domain.Category) (domain.Category, error) {
	if c.ID == domain.AllCategoryID {
		return domain.Category{}, fmt.Errorf("%w: %q is reserved", domain.ErrInvalidOperation, c.ID)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name = ?, image = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Image, now(), c.ID)
	if err != nil {
		return domain.Category{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Category{}, sql.ErrNoRows
	}
	return r.Get(ctx, c.ID)
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	if id == domain.AllCategoryID {
		return fmt.Errorf("%w: %q is reserved", domain.ErrInvalidOperation, id)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
