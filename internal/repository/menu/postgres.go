package menu

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"dogohouse/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id::text, key, name, COALESCE(description, ''), base_price::text, category, available, created_at
FROM products
ORDER BY category, name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("menu repo: list products error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("menu repo: list products rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("menu repo: list products count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id::text, key, name, COALESCE(description, ''), base_price::text, category, available, created_at
FROM products
WHERE id = $1
`
	row := r.pool.QueryRow(ctx, q, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListOptionGroups(ctx context.Context) ([]domain.OptionGroup, error) {
	const groupsQ = `
SELECT key, name, multi_choice
FROM option_groups
ORDER BY position, key
`
	rows, err := r.pool.Query(ctx, groupsQ)
	if err != nil {
		r.logger.Printf("menu repo: list option groups error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var groups []domain.OptionGroup
	index := map[string]int{}
	for rows.Next() {
		var g domain.OptionGroup
		if err := rows.Scan(&g.Key, &g.Name, &g.MultiChoice); err != nil {
			return nil, err
		}
		index[g.Key] = len(groups)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const optionsQ = `
SELECT id, group_key, name, price_delta::text
FROM options
ORDER BY group_key, position, id
`
	optRows, err := r.pool.Query(ctx, optionsQ)
	if err != nil {
		r.logger.Printf("menu repo: list options error=%v", err)
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var (
			opt      domain.Option
			groupKey string
			delta    string
		)
		if err := optRows.Scan(&opt.ID, &groupKey, &opt.Name, &delta); err != nil {
			return nil, err
		}
		opt.PriceDelta, err = decimal.NewFromString(delta)
		if err != nil {
			return nil, err
		}
		i, ok := index[groupKey]
		if !ok {
			continue
		}
		groups[i].Options = append(groups[i].Options, opt)
	}
	if err := optRows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *postgresRepo) UpsertProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (key, name, description, base_price, category, available)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (key) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    base_price = EXCLUDED.base_price,
    category = EXCLUDED.category,
    available = EXCLUDED.available
RETURNING id::text, key, name, COALESCE(description, ''), base_price::text, category, available, created_at
`
	row := r.pool.QueryRow(ctx, q, p.Key, p.Name, p.Description, p.BasePrice.String(), p.Category, p.Available)
	return scanProduct(row)
}

func (r *postgresRepo) UpsertOptionGroup(ctx context.Context, g domain.OptionGroup) error {
	const groupQ = `
INSERT INTO option_groups (key, name, multi_choice, position)
VALUES ($1, $2, $3, COALESCE((SELECT MAX(position) + 1 FROM option_groups), 0))
ON CONFLICT (key) DO UPDATE
SET name = EXCLUDED.name,
    multi_choice = EXCLUDED.multi_choice
`
	if _, err := r.pool.Exec(ctx, groupQ, g.Key, g.Name, g.MultiChoice); err != nil {
		return err
	}

	const optionQ = `
INSERT INTO options (id, group_key, name, price_delta, position)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET group_key = EXCLUDED.group_key,
    name = EXCLUDED.name,
    price_delta = EXCLUDED.price_delta,
    position = EXCLUDED.position
`
	for i, opt := range g.Options {
		if _, err := r.pool.Exec(ctx, optionQ, opt.ID, g.Key, opt.Name, opt.PriceDelta.String(), i); err != nil {
			return err
		}
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p     domain.Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Key, &p.Name, &p.Description, &price, &p.Category, &p.Available, &p.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	p.BasePrice, err = decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
