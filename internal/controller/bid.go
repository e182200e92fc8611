package controller

import (
	"errors"
	"net/http"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

type bidRoutesHandler struct {
	bidService    service.Bid
	hiringService service.Hiring
	validate      *validator.Validate
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, hiringService: services.Hiring, validate: v}
	bids := outer.Group("/bids", requireUser)
	bids.POST("", h.PostBid)
	bids.GET("/my", h.GetMyBids)
	bids.GET("/gig/:gigId", h.GetGigBids)

	bids.PATCH("/:bidId/hire", h.HireBid)
	bids.PUT("/:bidId", h.UpdateBid)
	bids.DELETE("/:bidId", h.DeleteBid)

	return h
}

type bidResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Bid     *entity.BidOutputModel `json:"bid"`
}

type bidsResponse struct {
	Success bool                    `json:"success"`
	Bids    []entity.BidOutputModel `json:"bids"`
}

type postBidInput struct {
	GigId   string   `json:"gigId" validate:"required"`
	Message string   `json:"message" validate:"required,max=2000"`
	Price   *float64 `json:"price" validate:"required,gte=0"`
}

// /bids
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, fail("Input data is not formed correctly"))
	}
	if err := h.validate.Struct(input); err != nil {
		if input.GigId == "" || input.Message == "" || input.Price == nil {
			return writeError(c, service.ErrMissingFields, "")
		}

		return c.JSON(http.StatusBadRequest, fail(getAllErrorMessages(err)))
	}

	gigId, err := uuid.Parse(input.GigId)
	if err != nil {
		return writeError(c, service.ErrGigNotFound, "")
	}

	bid, err := h.bidService.CreateBid(c.Request().Context(), &entity.CreateBidInput{
		GigId:        gigId,
		Message:      input.Message,
		Price:        *input.Price,
		FreelancerId: currentUser(c),
	})
	if err != nil {
		// bidding on your own gig is a bad request on this route, not a 403
		if errors.Is(err, service.ErrOwnGig) {
			return c.JSON(http.StatusBadRequest, fail(service.ErrOwnGig.Message))
		}

		return writeError(c, err, "Server error creating bid")
	}

	return c.JSON(http.StatusCreated, bidResponse{Success: true, Bid: bid})
}

// /bids/my
func (h *bidRoutesHandler) GetMyBids(c echo.Context) error {
	input := newPaginationInput()
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, fail("Input data is not formed correctly"))
	}
	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, fail(getAllErrorMessages(err)))
	}

	pg := entity.NewPaginationInput(input.Limit, input.Offset)
	bids, err := h.bidService.GetUserBids(c.Request().Context(), currentUser(c), pg)
	if err != nil {
		return writeError(c, err, "Server error fetching your bids")
	}

	return c.JSON(http.StatusOK, bidsResponse{Success: true, Bids: bids})
}

// /bids/gig/:gigId
func (h *bidRoutesHandler) GetGigBids(c echo.Context) error {
	input := newPaginationInput()
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, fail("Input data is not formed correctly"))
	}
	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, fail(getAllErrorMessages(err)))
	}

	pg := entity.NewPaginationInput(input.Limit, input.Offset)
	bids, err := h.bidService.GetGigBids(c.Request().Context(), c.Param("gigId"), currentUser(c), pg)
	if err != nil {
		return writeError(c, err, "Server error fetching bids")
	}

	return c.JSON(http.StatusOK, bidsResponse{Success: true, Bids: bids})
}

// /bids/:bidId/hire
func (h *bidRoutesHandler) HireBid(c echo.Context) error {
	bid, err := h.hiringService.Hire(c.Request().Context(), c.Param("bidId"), currentUser(c))
	if err != nil {
		return writeError(c, err, "Server error during hiring process")
	}

	return c.JSON(http.StatusOK, bidResponse{Success: true, Message: "Freelancer hired successfully", Bid: bid})
}

type updateBidInput struct {
	Message string   `json:"message" validate:"max=2000"`
	Price   *float64 `json:"price" validate:"omitempty,gte=0"`
}

// /bids/:bidId
func (h *bidRoutesHandler) UpdateBid(c echo.Context) error {
	var input updateBidInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, fail("Input data is not formed correctly"))
	}
	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, fail(getAllErrorMessages(err)))
	}

	bid, err := h.bidService.EditBidById(c.Request().Context(), c.Param("bidId"), currentUser(c), &entity.UpdateBidInput{
		Message: input.Message,
		Price:   input.Price,
	})
	if err != nil {
		return writeError(c, err, "Server error updating bid")
	}

	return c.JSON(http.StatusOK, bidResponse{Success: true, Bid: bid})
}

// /bids/:bidId
func (h *bidRoutesHandler) DeleteBid(c echo.Context) error {
	if err := h.bidService.DeleteBidById(c.Request().Context(), c.Param("bidId"), currentUser(c)); err != nil {
		return writeError(c, err, "Server error deleting bid")
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Bid deleted successfully"})
}
