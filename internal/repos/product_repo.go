package repos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sucree/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	ID              string  `db:"id"`
	CategoryID      string  `db:"category_id"`
	Name            string  `db:"name"`
	Description     string  `db:"description"`
	Price           float64 `db:"price"`
	ImagesJSON      string  `db:"images_json"`
	IngredientsJSON string  `db:"ingredients_json"`
	SizesJSON       string  `db:"sizes_json"`
	Stock           int     `db:"stock"`
	CreatedAt       string  `db:"created_at"`
	UpdatedAt       string  `db:"updated_at"`
}

const productCols = `
    id, category_id, name, description, price, images_json, ingredients_json, sizes_json, stock,
    created_at, COALESCE(updated_at,'') AS updated_at`

func decodeList(s string) []string {
	out := []string{}
	if s != "" {
		_ = json.Unmarshal([]byte(s), &out)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func encodeList(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func (r productRow) toDomain() domain.Product {
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
		Images:      decodeList(r.ImagesJSON),
		Ingredients: decodeList(r.IngredientsJSON),
		Stock:       r.Stock,
		Sizes:       decodeList(r.SizesJSON),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// List returns every product, newest first.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+productCols+`
  FROM products
  ORDER BY created_at DESC, rowid DESC`); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Get returns sql.ErrNoRows when the product does not exist.
func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var row productRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+productCols+` FROM products WHERE id = ?`, id); err != nil {
		return domain.Product{}, err
	}
	return row.toDomain(), nil
}

func insertProduct(ctx context.Context, ex sqlx.ExecerContext, p domain.Product) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO products(id, category_id, name, description, price, images_json, ingredients_json, sizes_json, stock, created_at)
		VALUES(?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.CategoryID, p.Name, p.Description, p.Price,
		encodeList(p.Images), encodeList(p.Ingredients), encodeList(p.Sizes), p.Stock, p.CreatedAt)
	return err
}

// Create stores p under a fresh id. Any id on p is ignored.
func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = now()
	if err := insertProduct(ctx, r.db, p); err != nil {
		return domain.Product{}, err
	}
	return r.Get(ctx, p.ID)
}

// Update overwrites every editable field of p.ID. Missing rows yield sql.ErrNoRows.
func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET category_id = ?, name = ?, description = ?, price = ?,
		    images_json = ?, ingredients_json = ?, sizes_json = ?, stock = ?, updated_at = ?
		WHERE id = ?`,
		p.CategoryID, p.Name, p.Description, p.Price,
		encodeList(p.Images), encodeList(p.Ingredients), encodeList(p.Sizes), p.Stock, now(), p.ID)
	if err != nil {
		return domain.Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Product{}, sql.ErrNoRows
	}
	return r.Get(ctx, p.ID)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
