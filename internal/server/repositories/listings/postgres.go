package listings

import (
	"context"

	"github.com/campushub/campushub/internal/dbx"
	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, listing *models.Listing) error {
	query := `
		INSERT INTO listings (id, seller_id, title, description, price, category, image, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		listing.ID, listing.SellerID, listing.Title, listing.Description,
		listing.Price, listing.Category, listing.Image, listing.Location).Scan(&listing.CreatedAt)
	return pgerr.Translate(err)
}

// filterClause matches when the corresponding filter argument is absent.
const filterClause = `
	($1 = '' OR category = $1)
	AND ($2::numeric IS NULL OR price >= $2)
	AND ($3::numeric IS NULL OR price <= $3)
`

func (r *PostgresRepository) List(ctx context.Context, filter models.ListingFilter, limit, offset int) ([]models.ListingView, error) {
	query := `
		SELECT l.id, l.title, l.description, l.price, l.category, l.image, l.location, l.created_at,
		       u.id, u.username, u.name, u.avatar
		FROM listings l
		JOIN users u ON u.id = l.seller_id
		WHERE ` + filterClause + `
		ORDER BY l.created_at DESC
		LIMIT $4 OFFSET $5
	`
	rows, err := r.db.QueryContext(ctx, query,
		filter.Category, filter.MinPrice, filter.MaxPrice, limit, offset)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	defer rows.Close()

	result := []models.ListingView{}
	for rows.Next() {
		var view models.ListingView
		if err := rows.Scan(
			&view.ID, &view.Title, &view.Description, &view.Price, &view.Category,
			&view.Image, &view.Location, &view.CreatedAt,
			&view.Seller.ID, &view.Seller.Username, &view.Seller.Name, &view.Seller.Avatar); err != nil {
			return nil, pgerr.Translate(err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Translate(err)
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context, filter models.ListingFilter) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM listings WHERE ` + filterClause
	if err := r.db.QueryRowContext(ctx, query, filter.Category, filter.MinPrice, filter.MaxPrice).Scan(&n); err != nil {
		return 0, pgerr.Translate(err)
	}
	return n, nil
}
