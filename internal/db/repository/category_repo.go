package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/gokatarajesh/trivia-api/internal/domain"
)

// CategoryRepository provides category persistence backed by PostgreSQL.
type CategoryRepository struct {
	db Querier
}

func NewCategoryRepository(db Querier) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListCategories returns every category ordered by id.
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query, args, err := psql.Select("id", "type").From("categories").OrderBy("id").ToSql()
	if err != nil {
		return nil, &domain.StoreError{Op: "build list categories", Err: err}
	}

	categories := []domain.Category{}
	if err := pgxscan.Select(ctx, r.db, &categories, query, args...); err != nil {
		return nil, mapError("list categories", err)
	}
	return categories, nil
}

// GetCategory returns a category by id or domain.ErrNotFound.
func (r *CategoryRepository) GetCategory(ctx context.Context, id int) (domain.Category, error) {
	if !serialID(id) {
		return domain.Category{}, mapError("get category", pgx.ErrNoRows)
	}
	query, args, err := psql.Select("id", "type").From("categories").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Category{}, &domain.StoreError{Op: "build get category", Err: err}
	}

	var c domain.Category
	if err := pgxscan.Get(ctx, r.db, &c, query, args...); err != nil {
		return domain.Category{}, mapError("get category", err)
	}
	return c, nil
}

// CreateCategory inserts a category. The unique constraint on type turns a
// concurrent duplicate into domain.ErrAlreadyExists for the losing caller.
func (r *CategoryRepository) CreateCategory(ctx context.Context, categoryType string) (domain.Category, error) {
	query, args, err := psql.Insert("categories").
		Columns("type").
		Values(categoryType).
		Suffix("RETURNING id, type").
		ToSql()
	if err != nil {
		return domain.Category{}, &domain.StoreError{Op: "build create category", Err: err}
	}

	var c domain.Category
	if err := pgxscan.Get(ctx, r.db, &c, query, args...); err != nil {
		return domain.Category{}, mapError("create category", err)
	}
	return c, nil
}
