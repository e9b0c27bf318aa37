package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"sme-credit-backend/internal/adapter/middleware"
	"sme-credit-backend/internal/usecase/application"
)

type ApplicationHandler struct{ uc *application.Usecase }

func NewApplicationHandler(uc *application.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type confirmReq struct {
	SelectedAmount     float64 `json:"selected_amount" validate:"gt=0,dec2"`
	SelectedTermMonths int     `json:"selected_term_months" validate:"gt=0"`
}

// RequestOffer scores the company in :id and opens an offered application.
func (h *ApplicationHandler) RequestOffer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalid(c, err)
	}
	dto, err := h.uc.RequestOffer(c.Request().Context(), middleware.OwnerID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) ListMine(c echo.Context) error {
	list, err := h.uc.ListForOwner(c.Request().Context(), middleware.OwnerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ApplicationHandler) Confirm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalid(c, err)
	}
	var req confirmReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	dto, err := h.uc.ConfirmSelection(c.Request().Context(), application.ConfirmInput{
		ApplicationID:      id,
		OwnerID:            middleware.OwnerID(c),
		SelectedAmount:     decimal.NewFromFloat(req.SelectedAmount).Round(2),
		SelectedTermMonths: req.SelectedTermMonths,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
