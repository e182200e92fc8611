package controller

import (
	"net/http"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type gigRoutesHandler struct {
	gigService service.Gig
	validate   *validator.Validate
}

func newGigRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *gigRoutesHandler {
	h := &gigRoutesHandler{gigService: services.Gig, validate: v}
	outer.GET("/gigs", h.GetGigs)
	outer.GET("/gigs/my", h.GetMyGigs, requireUser)
	outer.GET("/gigs/:id", h.GetGig)
	outer.POST("/gigs", h.PostGig, requireUser)
	outer.PUT("/gigs/:id", h.UpdateGig, requireUser)
	outer.DELETE("/gigs/:id", h.DeleteGig, requireUser)

	return h
}

type gigResponse struct {
	Success bool                   `json:"success"`
	Gig     *entity.GigOutputModel `json:"gig"`
}

type gigsResponse struct {
	Success bool                    `json:"success"`
	Gigs    []entity.GigOutputModel `json:"gigs"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type getGigsInput struct {
	Search string `query:"search" validate:"max=200"`
	Limit  int    `query:"limit" validate:"gte=0,lte=100"`
	Offset int    `query:"offset" validate:"gte=0"`
}

// /gigs
func (h *gigRoutesHandler) GetGigs(c echo.Context) error {
	input := getGigsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, fail("Input data is not formed correctly"))
	}
	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, fail(getAllErrorMessages(err)))
	}

	search := &entity.GigSearch{
		Text:            input.Search,
		PaginationInput: entity.NewPaginationInput(input.Limit, input.Offset),
	}
	gigs, err := h.gigService.GetOpenGigs(c.Request().Context(), search)
	if err != nil {
		return writeError(c, err, "Server error fetching gigs")
	}

	return c.JSON(http.StatusOK, gigsResponse{Success: true, Gigs: gigs})
}

// /gigs/:id
func (h *gigRoutesHandler) GetGig(c echo.Context) error {
	gig, err := h.gigService.GetGigById(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err, "Server error fetching gig")
	}

	return c.JSON(http.StatusOK, gigResponse{Success: true, Gig: gig})
}

// /gigs/my
func (h *gigRoutesHandler) GetMyGigs(c echo.Context) error {
	input := newPaginationInput()
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, fail("Input data is not formed correctly"))
	}
	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, fail(getAllErrorMessages(err)))
	}

	pg := entity.NewPaginationInput(input.Limit, input.Offset)
	gigs, err := h.gigService.GetUserGigs(c.Request().Context(), currentUser(c), pg)
	if err != nil {
		return writeError(c, err, "Server error fetching your gigs")
	}

	return c.JSON(http.StatusOK, gigsResponse{Success: true, Gigs: gigs})
}

type postGigInput struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=5000"`
	Budget      *float64 `json:"budget" validate:"required,gt=0"`
}

// /gigs
func (h *gigRoutesHandler) PostGig(c echo.Context) error {
	var input postGigInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, fail("Input data is not formed correctly"))
	}
	if err := h.validate.Struct(input); err != nil {
		if input.Title == "" || input.Description == "" || input.Budget == nil {
			return writeError(c, service.ErrMissingFields, "")
		}

		return c.JSON(http.StatusBadRequest, fail(getAllErrorMessages(err)))
	}

	gig, err := h.gigService.CreateGig(c.Request().Context(), &entity.CreateGigInput{
		Title:       input.Title,
		Description: input.Description,
		Budget:      *input.Budget,
		OwnerId:     currentUser(c),
	})
	if err != nil {
		return writeError(c, err, "Server error creating gig")
	}

	return c.JSON(http.StatusCreated, gigResponse{Success: true, Gig: gig})
}

type updateGigInput struct {
	Title       string  `json:"title" validate:"max=200"`
	Description string  `json:"description" validate:"max=5000"`
	Budget      float64 `json:"budget" validate:"gte=0"`
}

// /gigs/:id
func (h *gigRoutesHandler) UpdateGig(c echo.Context) error {
	var input updateGigInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, fail("Input data is not formed correctly"))
	}
	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, fail(getAllErrorMessages(err)))
	}

	gig, err := h.gigService.EditGigById(c.Request().Context(), c.Param("id"), currentUser(c), &entity.UpdateGigInput{
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
	})
	if err != nil {
		return writeError(c, err, "Server error updating gig")
	}

	return c.JSON(http.StatusOK, gigResponse{Success: true, Gig: gig})
}

// /gigs/:id
func (h *gigRoutesHandler) DeleteGig(c echo.Context) error {
	if err := h.gigService.DeleteGigById(c.Request().Context(), c.Param("id"), currentUser(c)); err != nil {
		return writeError(c, err, "Server error deleting gig")
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Gig deleted successfully"})
}
