package company

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"sme-credit-backend/internal/domain/apperr"
	appDomain "sme-credit-backend/internal/domain/application"
	companyDomain "sme-credit-backend/internal/domain/company"
	"sme-credit-backend/internal/domain/eligibility"
	"sme-credit-backend/internal/domain/risk"
	"sme-credit-backend/internal/domain/uow"
	"sme-credit-backend/internal/infrastructure/logging"
	appUsecase "sme-credit-backend/internal/usecase/application"
	"sme-credit-backend/pkg/id"
)

type Usecase struct {
	uow      uow.UnitOfWork
	config   risk.ConfigProvider
	issuer   *appUsecase.NumberIssuer
	notifier appDomain.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, config risk.ConfigProvider, issuer *appUsecase.NumberIssuer, notifier appDomain.Notifier, log *zap.Logger) *Usecase {
	if notifier == nil {
		notifier = appDomain.NopNotifier{}
	}
	return &Usecase{uow: tx, config: config, issuer: issuer, notifier: notifier, log: logging.OrNop(log), now: time.Now}
}

func (in CreateCompanyInput) validate(now time.Time) error {
	switch {
	case strings.TrimSpace(in.LegalName) == "":
		return apperr.New(apperr.ErrValidation, "legalName is required")
	case companyDomain.NormalizeTaxID(in.TaxID) == "":
		return apperr.New(apperr.ErrValidation, "taxId is required")
	case in.AnnualRevenue.IsNegative():
		return apperr.New(apperr.ErrValidation, "annualRevenue must not be negative")
	case in.EmployeeCount < 0:
		return apperr.New(apperr.ErrValidation, "employeeCount must not be negative")
	case in.FoundedAt != nil && in.FoundedAt.After(now):
		return apperr.New(apperr.ErrValidation, "foundedAt must not be in the future")
	case strings.TrimSpace(in.IndustryCode) == "":
		return apperr.New(apperr.ErrValidation, "industryCode is required")
	}
	return nil
}

// Create registers a company and then runs the eligibility gate. The gate
// never fails the call: its outcome is reported in the DTO and logged.
func (u *Usecase) Create(ctx context.Context, ownerID string, in CreateCompanyInput) (*CompanyDTO, error) {
	now := u.now().UTC()
	if err := in.validate(now); err != nil {
		return nil, err
	}

	c := &companyDomain.Company{
		CompanyID:     id.NewID32(),
		OwnerID:       ownerID,
		LegalName:     strings.TrimSpace(in.LegalName),
		TaxID:         companyDomain.NormalizeTaxID(in.TaxID),
		Email:         companyDomain.NormalizeEmail(in.Email),
		AnnualRevenue: in.AnnualRevenue.Round(2),
		EmployeeCount: in.EmployeeCount,
		FoundedAt:     in.FoundedAt,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ind, err := r.Industries.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(in.IndustryCode)))
		if err != nil {
			return err
		}
		c.IndustryID = ind.ID
		c.Industry = ind
		return r.Companies.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	dto := toDTO(c)
	dto.Eligibility = u.gate(ctx, c, now)
	return dto, nil
}

// gate records a NOT_APPLICABLE application for a company above the
// eligibility limits. Failures are logged and do not propagate.
func (u *Usecase) gate(ctx context.Context, c *companyDomain.Company, now time.Time) *EligibilityDTO {
	log := u.log.With(zap.String("company_id", c.CompanyID))
	params, err := u.config.Parameters(ctx)
	if err != nil {
		log.Warn("eligibility gate skipped", zap.Error(err))
		return nil
	}
	res := eligibility.Evaluate(c.AnnualRevenue, c.EmployeeCount, eligibility.LimitsFrom(params))
	out := &EligibilityDTO{Exceeds: res.Exceeds, Reasons: res.Reasons}
	if !res.Exceeds {
		return out
	}

	a, err := u.issuer.Create(ctx, u.uow, func(context.Context, uow.Repos) (*appDomain.CreditApplication, error) {
		return appDomain.NewNotApplicable(c, id.NewID32(), "", res.Reason(), now), nil
	})
	if err != nil {
		log.Warn("could not record not-applicable application", zap.Error(err))
		return out
	}
	log.Warn("company exceeds eligibility limits",
		zap.String("number", a.Number),
		zap.Strings("reasons", res.Reasons),
	)
	out.NotApplicableNumber = a.Number
	u.notifier.Notify(appDomain.NotificationFor(a, now))
	return out
}

// Delete soft-deletes an owned company and frees its tax id and email.
func (u *Usecase) Delete(ctx context.Context, ownerID, companyID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Companies.GetByCompanyIDForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if c.OwnerID != ownerID {
			return companyDomain.ErrNotFound
		}
		return r.Companies.SoftDelete(ctx, c, ownerID)
	})
}

// AttachDocument records supporting-document metadata for an owned company.
func (u *Usecase) AttachDocument(ctx context.Context, ownerID, companyID string, in AttachDocumentInput) (*DocumentDTO, error) {
	if strings.TrimSpace(in.Kind) == "" || strings.TrimSpace(in.FileName) == "" || strings.TrimSpace(in.StorageKey) == "" {
		return nil, apperr.New(apperr.ErrValidation, "kind, fileName and storageKey are required")
	}
	if in.SizeBytes < 0 {
		return nil, apperr.New(apperr.ErrValidation, "sizeBytes must not be negative")
	}

	var (
		d     *companyDomain.Document
		total int64
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Companies.GetByCompanyID(ctx, companyID)
		if err != nil {
			return err
		}
		if c.OwnerID != ownerID {
			return companyDomain.ErrNotFound
		}
		d = &companyDomain.Document{
			DocumentID:  id.NewID32(),
			CompanyRef:  c.ID,
			Kind:        strings.ToUpper(strings.TrimSpace(in.Kind)),
			FileName:    strings.TrimSpace(in.FileName),
			StorageKey:  strings.TrimSpace(in.StorageKey),
			ContentType: in.ContentType,
			SizeBytes:   in.SizeBytes,
			UploadedBy:  ownerID,
		}
		if err := r.Documents.Create(ctx, d); err != nil {
			return err
		}
		total, err = r.Documents.Count(ctx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &DocumentDTO{
		DocumentID:  d.DocumentID,
		Kind:        d.Kind,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		CreatedAt:   d.CreatedAt,
		Total:       total,
	}, nil
}

func (u *Usecase) Industries(ctx context.Context) ([]companyDomain.Industry, error) {
	var out []companyDomain.Industry
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		out, err = r.Industries.List(ctx)
		return err
	})
	return out, err
}
