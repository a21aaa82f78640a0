package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/repositories/listings"
	"github.com/campushub/campushub/internal/server/services"
	"github.com/campushub/campushub/internal/server/validate"
)

func (a *API) browseListings(c *gin.Context) {
	page, limit := validate.Pagination(c.Query("page"), c.Query("limit"))

	v := validate.New()
	v.OneOf("category", c.Query("category"), listings.Categories)
	filter := models.ListingFilter{
		Category: c.Query("category"),
		MinPrice: v.PositiveFloat("minPrice", c.Query("minPrice")),
		MaxPrice: v.PositiveFloat("maxPrice", c.Query("maxPrice")),
	}
	if err := v.Err(); err != nil {
		a.fail(c, err)
		return
	}

	res, err := a.Listings.Browse(c.Request.Context(), filter, page, limit)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.okDegraded(c, http.StatusOK, res.Value, res.Degraded)
}

type listingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Location    string  `json:"location"`
}

func (a *API) createListing(c *gin.Context) {
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, badBody())
		return
	}

	v := validate.New()
	v.Require("title", req.Title)
	v.Length("title", req.Title, 1, 100)
	v.Length("description", req.Description, 0, 2000)
	v.Range("price", req.Price, 0, 1_000_000)
	v.Require("category", req.Category)
	v.OneOf("category", req.Category, listings.Categories)
	v.URL("image", req.Image)
	if err := v.Err(); err != nil {
		a.fail(c, err)
		return
	}

	view, err := a.Listings.Create(c.Request.Context(), callerID(c), services.ListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Location:    req.Location,
	})
	if err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusCreated, view)
}
