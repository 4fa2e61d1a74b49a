package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/neexbeast/explorex/internal/catalog"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository reads the destination and agency tables.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// ListDestinations returns every destination ordered by id.
func (r *Repository) ListDestinations(ctx context.Context) ([]catalog.Destination, error) {
	const q = `
		SELECT id, name, country, description, image, category, rating, price, activities
		FROM destinations
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying destinations: %w", err)
	}
	defer rows.Close()

	var results []catalog.Destination
	for rows.Next() {
		var d catalog.Destination
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Country,
			&d.Description,
			&d.Image,
			&d.Category,
			&d.Rating,
			&d.Price,
			&d.Activities,
		); err != nil {
			return nil, fmt.Errorf("scanning destination row: %w", err)
		}
		results = append(results, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating destination rows: %w", err)
	}

	return results, nil
}

// ListAgencies returns every agency ordered by id.
func (r *Repository) ListAgencies(ctx context.Context) ([]catalog.Agency, error) {
	const q = `
		SELECT id, name, logo, description, rating, review_count, specialties,
		       founded_year, locations, website, featured_image
		FROM agencies
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying agencies: %w", err)
	}
	defer rows.Close()

	var results []catalog.Agency
	for rows.Next() {
		var a catalog.Agency
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Logo,
			&a.Description,
			&a.Rating,
			&a.ReviewCount,
			&a.Specialties,
			&a.FoundedYear,
			&a.Locations,
			&a.Website,
			&a.FeaturedImage,
		); err != nil {
			return nil, fmt.Errorf("scanning agency row: %w", err)
		}
		results = append(results, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating agency rows: %w", err)
	}

	return results, nil
}

// LoadCatalog reads both tables in parallel and builds a validated catalog.
// about is attached as-is because the database only stores the record tables.
func (r *Repository) LoadCatalog(ctx context.Context, about catalog.About) (*catalog.Catalog, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var destinations []catalog.Destination
	var agencies []catalog.Agency

	g.Go(func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("destination load panicked", "recover", rec)
				err = fmt.Errorf("destination load panicked: %v", rec)
			}
		}()
		destinations, err = r.ListDestinations(gCtx)
		return err
	})

	g.Go(func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("agency load panicked", "recover", rec)
				err = fmt.Errorf("agency load panicked: %v", rec)
			}
		}()
		agencies, err = r.ListAgencies(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	c, err := catalog.New(destinations, agencies, about)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	slog.Info("catalog loaded from database", "destinations", len(destinations), "agencies", len(agencies))
	return c, nil
}
