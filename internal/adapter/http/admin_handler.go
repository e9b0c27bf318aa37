package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"sme-credit-backend/internal/adapter/middleware"
	"sme-credit-backend/internal/domain/apperr"
	appDomain "sme-credit-backend/internal/domain/application"
	"sme-credit-backend/internal/usecase/application"
	"sme-credit-backend/internal/usecase/review"
)

type AdminHandler struct {
	apps   *application.Usecase
	review *review.Usecase
}

func NewAdminHandler(apps *application.Usecase, rv *review.Usecase) *AdminHandler {
	return &AdminHandler{apps: apps, review: rv}
}

// Absent fields leave the stored value untouched.
type updateStatusReq struct {
	Status          string   `json:"status" validate:"required"`
	Reason          *string  `json:"reason" validate:"omitempty,max=1000"`
	RejectionReason *string  `json:"rejection_reason" validate:"omitempty,max=1000"`
	InternalNotes   *string  `json:"internal_notes"`
	UserNotes       *string  `json:"user_notes"`
	ApprovedAmount  *float64 `json:"approved_amount" validate:"omitempty,gt=0,dec2"`
	RiskScore       *int     `json:"risk_score" validate:"omitempty,gte=0,lte=100"`
}

func (h *AdminHandler) List(c echo.Context) error {
	f, err := parseListFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.apps.ListForAdmin(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *AdminHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalid(c, err)
	}
	dto, err := h.review.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdminHandler) Transitions(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalid(c, err)
	}
	dto, err := h.review.AllowedTransitions(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalid(c, err)
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	to, err := appDomain.ParseStatus(req.Status)
	if err != nil {
		return writeError(c, err)
	}
	in := appDomain.TransitionInput{
		To:              to,
		Actor:           middleware.AdminID(c),
		Reason:          appDomain.FromPtr(req.Reason),
		RejectionReason: appDomain.FromPtr(req.RejectionReason),
		InternalNotes:   appDomain.FromPtr(req.InternalNotes),
		UserNotes:       appDomain.FromPtr(req.UserNotes),
		RiskScore:       appDomain.FromPtr(req.RiskScore),
	}
	if req.ApprovedAmount != nil {
		in.ApprovedAmount = appDomain.Some(decimal.NewFromFloat(*req.ApprovedAmount).Round(2))
	}
	dto, err := h.review.TransitionStatus(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func parseListFilter(c echo.Context) (appDomain.ListFilter, error) {
	var f appDomain.ListFilter
	if raw := c.QueryParam("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			st, err := appDomain.ParseStatus(s)
			if err != nil {
				return f, err
			}
			f.Statuses = append(f.Statuses, st)
		}
	}
	f.CompanyID = strings.TrimSpace(c.QueryParam("company_id"))

	var err error
	if f.CreatedFrom, err = queryTime(c, "created_from"); err != nil {
		return f, err
	}
	if f.CreatedTo, err = queryTime(c, "created_to"); err != nil {
		return f, err
	}
	if f.MinAmount, err = queryDecimal(c, "min_amount"); err != nil {
		return f, err
	}
	if f.MaxAmount, err = queryDecimal(c, "max_amount"); err != nil {
		return f, err
	}

	f.SortBy = c.QueryParam("sort_by")
	switch strings.ToLower(c.QueryParam("order")) {
	case "", "asc":
	case "desc":
		f.Desc = true
	default:
		return f, apperr.New(apperr.ErrValidation, "order must be asc or desc")
	}
	if f.Page, err = queryInt(c, "page"); err != nil {
		return f, err
	}
	if f.PageSize, err = queryInt(c, "page_size"); err != nil {
		return f, err
	}
	return f, nil
}

// queryTime accepts RFC3339 or a bare date (UTC midnight).
func queryTime(c echo.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, apperr.New(apperr.ErrValidation, name+" must be RFC3339 or YYYY-MM-DD")
}

func queryDecimal(c echo.Context, name string) (decimal.NullDecimal, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, apperr.New(apperr.ErrValidation, name+" must be a number")
	}
	return decimal.NewNullDecimal(d), nil
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperr.New(apperr.ErrValidation, fmt.Sprintf("%s must be a non-negative integer", name))
	}
	return n, nil
}
