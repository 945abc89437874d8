package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"hooks/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// All returns every product in insertion order. The catalog treats an empty
// result as "backend has nothing" and keeps its generated products.
func (r *ProductRepo) All(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.SelectContext(ctx, &out, `
	  SELECT id, name, COALESCE(description,'') AS description, price,
	         COALESCE(image_url,'') AS image_url, category, stock, created_at
	  FROM products
	  ORDER BY id
	`)
	return out, err
}

// ReplaceAll overwrites the backend copy of the catalog. Used by tests and
// by operators loading fixture data.
func (r *ProductRepo) ReplaceAll(ctx context.Context, products []domain.Product) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return err
	}
	for _, p := range products {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products(id,name,description,price,image_url,category,stock,created_at)
			VALUES(?,?,?,?,?,?,?,?)
		`, p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.Stock, p.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}
