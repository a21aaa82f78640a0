package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/campushub/campushub/internal/server/facade"
	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/repositories/repomanager"
)

// ListingService implements the campus marketplace.
type ListingService struct {
	*Store
}

func NewListingService(store *Store) *ListingService {
	return &ListingService{Store: store}
}

// Browse returns one page of listings matching the filter, newest first.
// Served degraded from the fallback dataset when the primary is down.
func (s *ListingService) Browse(ctx context.Context, filter models.ListingFilter, page, limit int) (facade.Result[models.ListingPage], error) {
	return facade.Read(ctx, s.Facade, "listings.browse",
		func(ctx context.Context) (models.ListingPage, error) {
			return s.pageFrom(ctx, s.Primary, filter, page, limit)
		},
		fallbackOp(s.Store, func(ctx context.Context, m repomanager.RepositoryManager) (models.ListingPage, error) {
			return s.pageFrom(ctx, m, filter, page, limit)
		}),
	)
}

// ListingInput carries the fields of POST /api/marketplace.
type ListingInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Image       string
	Location    string
}

// Create stores a listing for the seller and returns its view.
func (s *ListingService) Create(ctx context.Context, sellerID string, in ListingInput) (*models.ListingView, error) {
	listing := &models.Listing{
		ID:          uuid.NewString(),
		SellerID:    sellerID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.Image,
		Location:    in.Location,
	}
	return facade.Write(ctx, s.Facade, "listings.create", func(ctx context.Context) (*models.ListingView, error) {
		if err := s.Primary.Listings(s.DB).Create(ctx, listing); err != nil {
			return nil, err
		}
		seller, err := s.Primary.Users(s.DB).GetByID(ctx, sellerID)
		if err != nil {
			return nil, err
		}
		return &models.ListingView{
			ID:          listing.ID,
			Seller:      models.Author{ID: seller.ID, Username: seller.Username, Name: seller.Name, Avatar: seller.Avatar},
			Title:       listing.Title,
			Description: listing.Description,
			Price:       listing.Price,
			Category:    listing.Category,
			Image:       listing.Image,
			Location:    listing.Location,
			CreatedAt:   listing.CreatedAt,
		}, nil
	})
}

func (s *ListingService) pageFrom(ctx context.Context, m repomanager.RepositoryManager, filter models.ListingFilter, page, limit int) (models.ListingPage, error) {
	h := s.handle(m)
	items, err := m.Listings(h).List(ctx, filter, limit, offsetFor(page, limit))
	if err != nil {
		return models.ListingPage{}, err
	}
	total, err := m.Listings(h).Count(ctx, filter)
	if err != nil {
		return models.ListingPage{}, err
	}
	return models.ListingPage{Listings: items, Pagination: paginate(total, page, limit)}, nil
}
