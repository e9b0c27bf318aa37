package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sme-credit-backend/internal/domain/apperr"
	appDomain "sme-credit-backend/internal/domain/application"
	"sme-credit-backend/internal/domain/company"
	"sme-credit-backend/internal/domain/eligibility"
	"sme-credit-backend/internal/domain/risk"
	"sme-credit-backend/internal/domain/uow"
	"sme-credit-backend/internal/infrastructure/logging"
	"sme-credit-backend/pkg/id"
)

var ErrDocumentsRequired = apperr.New(apperr.ErrValidation, "at least one supporting document is required before requesting an offer")

type Usecase struct {
	uow      uow.UnitOfWork
	config   risk.ConfigProvider
	issuer   *NumberIssuer
	table    appDomain.TransitionTable
	notifier appDomain.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, config risk.ConfigProvider, issuer *NumberIssuer, table appDomain.TransitionTable, notifier appDomain.Notifier, log *zap.Logger) *Usecase {
	if notifier == nil {
		notifier = appDomain.NopNotifier{}
	}
	return &Usecase{
		uow:      tx,
		config:   config,
		issuer:   issuer,
		table:    table,
		notifier: notifier,
		log:      logging.OrNop(log),
		now:      time.Now,
	}
}

// RequestOffer scores the company and opens an APPLYING application with
// the resulting offer. The company row is locked for the duration, and the
// active-slot unique index backs the pre-check against concurrent requests.
func (u *Usecase) RequestOffer(ctx context.Context, ownerID, companyID string) (*ApplicationDTO, error) {
	params, err := u.config.Parameters(ctx)
	if err != nil {
		return nil, u.configFailure(err, companyID)
	}
	now := u.now().UTC()

	a, err := u.issuer.Create(ctx, u.uow, func(ctx context.Context, r uow.Repos) (*appDomain.CreditApplication, error) {
		c, err := r.Companies.GetByCompanyIDForUpdate(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if c.OwnerID != ownerID {
			return nil, company.ErrNotFound
		}

		active, err := r.Applications.GetActiveByCompanyID(ctx, c.ID)
		switch {
		case err == nil:
			return nil, fmt.Errorf("%w: %s (%s)", appDomain.ErrActiveApplicationExists, active.Number, active.Status)
		case !errors.Is(err, appDomain.ErrNotFound):
			return nil, err
		}

		has, err := r.Documents.HasDocuments(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if !has {
			return nil, ErrDocumentsRequired
		}

		if res := eligibility.Evaluate(c.AnnualRevenue, c.EmployeeCount, eligibility.LimitsFrom(params)); res.Exceeds {
			return nil, fmt.Errorf("%w: company is not eligible: %s", apperr.ErrValidation, res.Reason())
		}

		offer, err := risk.Calculate(c.Profile(), params, now)
		if err != nil {
			return nil, err
		}
		return appDomain.NewOffered(c, id.NewID32(), "", offer, now), nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConfiguration) {
			return nil, u.configFailure(err, companyID)
		}
		return nil, err
	}

	u.log.Info("offer issued",
		zap.String("application_id", a.ApplicationID),
		zap.String("number", a.Number),
		zap.String("tier", string(a.Offer.Tier)),
		zap.Int("score", a.Offer.Score),
	)
	u.notifier.Notify(appDomain.NotificationFor(a, now))
	return ToDTO(a), nil
}

// ConfirmSelection records the borrower's chosen amount and term and moves
// the application to SUBMITTED.
func (u *Usecase) ConfirmSelection(ctx context.Context, in ConfirmInput) (*ApplicationDTO, error) {
	now := u.now().UTC()
	var out *appDomain.CreditApplication
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *appDomain.CreditApplication) error {
		if a.OwnerID != in.OwnerID {
			return appDomain.ErrNotFound
		}
		from := a.Status
		if err := a.Confirm(u.table, in.SelectedAmount, in.SelectedTermMonths, in.OwnerID, now); err != nil {
			return err
		}
		if err := r.Applications.SaveTransition(ctx, a, from); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notifier.Notify(appDomain.NotificationFor(out, now))
	return ToDTO(out), nil
}

func (u *Usecase) ListForOwner(ctx context.Context, ownerID string) ([]ApplicationDTO, error) {
	var items []appDomain.CreditApplication
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		items, err = r.Applications.ListByOwner(ctx, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]ApplicationDTO, 0, len(items))
	for i := range items {
		out = append(out, *ToDTO(&items[i]))
	}
	return out, nil
}

func (u *Usecase) ListForAdmin(ctx context.Context, f appDomain.ListFilter) (*PageDTO, error) {
	f, err := f.Normalize()
	if err != nil {
		return nil, err
	}
	var (
		items []appDomain.CreditApplication
		total int64
	)
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		items, total, err = r.Applications.List(ctx, f)
		return err
	})
	if err != nil {
		return nil, err
	}
	page := &PageDTO{Items: make([]AdminApplicationDTO, 0, len(items)), Total: total, Page: f.Page, PageSize: f.PageSize}
	for i := range items {
		page.Items = append(page.Items, *ToAdminDTO(&items[i]))
	}
	return page, nil
}

func (u *Usecase) configFailure(err error, companyID string) error {
	if errors.Is(err, apperr.ErrConfiguration) {
		u.log.Error("system misconfiguration", zap.String("company_id", companyID), zap.Error(err))
	}
	return err
}
