// Package listings provides the marketplace listing repository.
package listings

import (
	"context"

	"github.com/campushub/campushub/internal/server/models"
)

// Categories accepted for a listing.
var Categories = []string{"books", "electronics", "furniture", "clothing", "tickets", "services", "other"}

type Repository interface {
	Create(ctx context.Context, listing *models.Listing) error
	List(ctx context.Context, filter models.ListingFilter, limit, offset int) ([]models.ListingView, error)
	Count(ctx context.Context, filter models.ListingFilter) (int, error)
}
