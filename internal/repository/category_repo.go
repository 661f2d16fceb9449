package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/magala-news-api/internal/database"
	"github.com/magala-news-api/internal/models"
)

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = `id, name, slug, color, created_at`

func scanCategory(row rowScanner) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Color, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// List retrieves all categories ordered by name
func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetByID retrieves a category by ID
func (r *categoryRepo) GetByID(ctx context.Context, id int) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// GetBySlug retrieves a category by slug
func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// Create inserts a new category
func (r *categoryRepo) Create(ctx context.Context, name, slug, color string) (*models.Category, error) {
	query := `INSERT INTO categories (name, slug, color) VALUES ($1, $2, $3) RETURNING ` + categoryColumns
	return scanCategory(r.db.QueryRowContext(ctx, query, name, slug, color))
}

// Update applies the non-nil fields of a partial update
func (r *categoryRepo) Update(ctx context.Context, id int, name, slug, color *string) (*models.Category, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if name != nil {
		add("name", *name)
	}
	if slug != nil {
		add("slug", *slug)
	}
	if color != nil {
		add("color", *color)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE categories SET %s WHERE id = $%d RETURNING `+categoryColumns,
		strings.Join(sets, ", "), len(args))

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// Delete removes a category; referencing articles keep a null category
func (r *categoryRepo) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
