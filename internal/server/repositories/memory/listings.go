package memory

import (
	"context"
	"sort"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/server/models"
)

type listingRepo struct {
	m *Manager
}

func (r *listingRepo) Create(ctx context.Context, listing *models.Listing) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	if _, ok := r.m.users[listing.SellerID]; !ok {
		return common.ErrNotFound
	}
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now()
	}
	stored := *listing
	r.m.listings[stored.ID] = &stored
	return nil
}

func (r *listingRepo) List(ctx context.Context, filter models.ListingFilter, limit, offset int) ([]models.ListingView, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	all := []*models.Listing{}
	for _, l := range r.m.listings {
		if matches(l, filter) {
			all = append(all, l)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	result := []models.ListingView{}
	for i := offset; i < len(all) && len(result) < limit; i++ {
		l := all[i]
		result = append(result, models.ListingView{
			ID:          l.ID,
			Seller:      r.m.author(l.SellerID),
			Title:       l.Title,
			Description: l.Description,
			Price:       l.Price,
			Category:    l.Category,
			Image:       l.Image,
			Location:    l.Location,
			CreatedAt:   l.CreatedAt,
		})
	}
	return result, nil
}

func (r *listingRepo) Count(ctx context.Context, filter models.ListingFilter) (int, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return 0, err
	}

	n := 0
	for _, l := range r.m.listings {
		if matches(l, filter) {
			n++
		}
	}
	return n, nil
}

func matches(l *models.Listing, filter models.ListingFilter) bool {
	if filter.Category != "" && l.Category != filter.Category {
		return false
	}
	if filter.MinPrice != nil && l.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && l.Price > *filter.MaxPrice {
		return false
	}
	return true
}
