package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"sme-credit-backend/internal/adapter/middleware"
	"sme-credit-backend/internal/usecase/company"
)

type CompanyHandler struct{ uc *company.Usecase }

func NewCompanyHandler(uc *company.Usecase) *CompanyHandler { return &CompanyHandler{uc: uc} }

type createCompanyReq struct {
	LegalName     string  `json:"legal_name" validate:"required,max=200"`
	TaxID         string  `json:"tax_id" validate:"required,max=32"`
	Email         *string `json:"email" validate:"omitempty,email"`
	AnnualRevenue float64 `json:"annual_revenue" validate:"gte=0,dec2"`
	EmployeeCount int     `json:"employee_count" validate:"gte=0"`
	FoundedAt     string  `json:"founded_at" validate:"omitempty,datetime=2006-01-02"`
	IndustryCode  string  `json:"industry_code" validate:"required"`
}

type attachDocumentReq struct {
	Kind        string `json:"kind" validate:"required,max=64"`
	FileName    string `json:"file_name" validate:"required,max=255"`
	StorageKey  string `json:"storage_key" validate:"required,max=512"`
	ContentType string `json:"content_type" validate:"max=128"`
	SizeBytes   int64  `json:"size_bytes" validate:"gte=0"`
}

func (h *CompanyHandler) Create(c echo.Context) error {
	var req createCompanyReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	in := company.CreateCompanyInput{
		LegalName:     req.LegalName,
		TaxID:         req.TaxID,
		Email:         req.Email,
		AnnualRevenue: decimal.NewFromFloat(req.AnnualRevenue).Round(2),
		EmployeeCount: req.EmployeeCount,
		IndustryCode:  req.IndustryCode,
	}
	if s := strings.TrimSpace(req.FoundedAt); s != "" {
		// layout already checked by the validator
		t, _ := time.Parse(time.DateOnly, s)
		in.FoundedAt = &t
	}
	dto, err := h.uc.Create(c.Request().Context(), middleware.OwnerID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CompanyHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalid(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), middleware.OwnerID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CompanyHandler) AttachDocument(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalid(c, err)
	}
	var req attachDocumentReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	dto, err := h.uc.AttachDocument(c.Request().Context(), middleware.OwnerID(c), id, company.AttachDocumentInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CompanyHandler) Industries(c echo.Context) error {
	list, err := h.uc.Industries(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
