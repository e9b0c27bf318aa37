package review

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sme-credit-backend/internal/domain/apperr"
	appDomain "sme-credit-backend/internal/domain/application"
	"sme-credit-backend/internal/domain/uow"
	"sme-credit-backend/internal/infrastructure/logging"
	appUsecase "sme-credit-backend/internal/usecase/application"
)

const DefaultSignatureTimeout = 10 * time.Second

type AllowedTransitionsDTO struct {
	ApplicationID string   `json:"application_id"`
	Status        string   `json:"status"`
	Allowed       []string `json:"allowed"`
}

type Usecase struct {
	uow         uow.UnitOfWork
	table       appDomain.TransitionTable
	signer      appDomain.SignatureService
	signTimeout time.Duration
	notifier    appDomain.Notifier
	log         *zap.Logger
	now         func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, table appDomain.TransitionTable, signer appDomain.SignatureService, signTimeout time.Duration, notifier appDomain.Notifier, log *zap.Logger) *Usecase {
	if signTimeout <= 0 {
		signTimeout = DefaultSignatureTimeout
	}
	if notifier == nil {
		notifier = appDomain.NopNotifier{}
	}
	return &Usecase{
		uow:         tx,
		table:       table,
		signer:      signer,
		signTimeout: signTimeout,
		notifier:    notifier,
		log:         logging.OrNop(log),
		now:         time.Now,
	}
}

// TransitionStatus applies an administrator status change. Approval
// requests the contract signature inside the same transaction; if that call
// fails nothing is written. A signature obtained for a transaction that then
// fails is logged as orphaned.
func (u *Usecase) TransitionStatus(ctx context.Context, applicationID string, in appDomain.TransitionInput) (*appUsecase.AdminApplicationDTO, error) {
	now := u.now().UTC()
	var (
		out         *appDomain.CreditApplication
		signatureID string
	)
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.CreditApplication) error {
		signatureID = ""
		from := a.Status
		if err := a.Transition(u.table, in, now); err != nil {
			return err
		}
		if a.Status == appDomain.StatusApproved {
			requestID, err := u.requestSignature(ctx, a)
			if err != nil {
				return err
			}
			signatureID = requestID
			a.SignatureRequestID = &requestID
		}
		if err := r.Applications.SaveTransition(ctx, a, from); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		if signatureID != "" {
			// the remote request exists but nothing references it; it has to
			// be cancelled with the provider by hand
			u.log.Error("orphaned signature request",
				zap.String("application_id", applicationID),
				zap.String("signature_request_id", signatureID),
				zap.Error(err),
			)
		}
		return nil, err
	}

	u.log.Info("application status changed",
		zap.String("application_id", out.ApplicationID),
		zap.String("status", string(out.Status)),
		zap.String("actor", in.Actor),
	)
	u.notifier.Notify(appDomain.NotificationFor(out, now))
	return appUsecase.ToAdminDTO(out), nil
}

func (u *Usecase) requestSignature(ctx context.Context, a *appDomain.CreditApplication) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.signTimeout)
	defer cancel()
	requestID, err := u.signer.RequestSignature(ctx, a.ApplicationID, a.Number)
	if err != nil {
		u.log.Error("signature request failed",
			zap.String("application_id", a.ApplicationID),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: signature request for %s: %v", apperr.ErrDependency, a.Number, err)
	}
	return requestID, nil
}

func (u *Usecase) AllowedTransitions(ctx context.Context, applicationID string) (*AllowedTransitionsDTO, error) {
	a, err := u.get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	allowed := u.table.Allowed(a.Status)
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = string(s)
	}
	return &AllowedTransitionsDTO{ApplicationID: a.ApplicationID, Status: string(a.Status), Allowed: names}, nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*appUsecase.AdminApplicationDTO, error) {
	a, err := u.get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return appUsecase.ToAdminDTO(a), nil
}

func (u *Usecase) get(ctx context.Context, applicationID string) (*appDomain.CreditApplication, error) {
	var a *appDomain.CreditApplication
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		a, err = r.Applications.GetByApplicationID(ctx, applicationID)
		return err
	})
	return a, err
}
