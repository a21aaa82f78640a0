package models

import "time"

// Listing is a marketplace listing record.
type Listing struct {
	ID          string
	SellerID    string
	Title       string
	Description string
	Price       float64
	Category    string
	Image       string
	Location    string
	CreatedAt   time.Time
}

// ListingView is a listing with its seller embedded.
type ListingView struct {
	ID          string    `json:"id"`
	Seller      Author    `json:"seller"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListingPage is the payload of GET /api/marketplace.
type ListingPage struct {
	Listings   []ListingView `json:"listings"`
	Pagination Pagination    `json:"pagination"`
}

// ListingFilter narrows a marketplace query.
type ListingFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
}
