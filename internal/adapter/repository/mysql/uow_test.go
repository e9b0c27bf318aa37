package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"sme-credit-backend/internal/domain/application"
	"sme-credit-backend/internal/domain/uow"
	"sme-credit-backend/pkg/id"
)

// ----------------------------- Tests -----------------------------

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	c := seedCompany(t, db, "o", "UOW1")

	var appID string
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		a := makeOffered(t, c, "#CRD-2025-000001")
		appID = a.ApplicationID
		return r.Applications.Create(ctx, a)
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}
	if _, err := NewApplicationRepository(db).GetByApplicationID(ctx, appID); err != nil {
		t.Fatalf("application not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	ind := seedIndustry(t, db, "ROLL", "B")

	sentinel := errors.New("boom")
	c := newCompany(ind, "o", "UOW2")
	var appID string
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Companies.Create(ctx, c); err != nil {
			return err
		}
		a := makeOffered(t, c, "#CRD-2025-000001")
		appID = a.ApplicationID
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		return sentinel // force rollback
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}

	if _, err := NewCompanyRepository(db).GetByCompanyID(ctx, c.CompanyID); err == nil {
		t.Fatal("company visible after rollback")
	}
	if _, err := NewApplicationRepository(db).GetByApplicationID(ctx, appID); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected application absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinApplicationTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	c := seedCompany(t, db, "o", "UOW3")
	seed := makeOffered(t, c, "#CRD-2025-000001")
	if err := NewApplicationRepository(db).Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := guow.WithinApplicationTx(ctx, seed.ApplicationID, func(r uow.Repos, a *application.CreditApplication) error {
		if a == nil || a.Status != application.StatusApplying {
			t.Fatalf("unexpected application passed to fn: %+v", a)
		}
		if err := a.Transition(application.DefaultTransitions(), application.TransitionInput{To: application.StatusCancelled, Actor: "admin"}, time.Now()); err != nil {
			return err
		}
		return r.Applications.SaveTransition(ctx, a, application.StatusApplying)
	})
	if err != nil {
		t.Fatalf("WithinApplicationTx commit err: %v", err)
	}

	got, err := NewApplicationRepository(db).GetByApplicationID(ctx, seed.ApplicationID)
	if err != nil || got.Status != application.StatusCancelled {
		t.Fatalf("status not updated: %v %+v", err, got)
	}
}

func TestGormUoW_WithinApplicationTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	c := seedCompany(t, db, "o", "UOW4")
	seed := makeOffered(t, c, "#CRD-2025-000001")
	if err := NewApplicationRepository(db).Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sentinel := errors.New("stop")
	_ = guow.WithinApplicationTx(ctx, seed.ApplicationID, func(r uow.Repos, a *application.CreditApplication) error {
		_ = a.Transition(application.DefaultTransitions(), application.TransitionInput{To: application.StatusCancelled, Actor: "admin"}, time.Now())
		if err := r.Applications.SaveTransition(ctx, a, application.StatusApplying); err != nil {
			return err
		}
		return sentinel
	})

	got, err := NewApplicationRepository(db).GetByApplicationID(ctx, seed.ApplicationID)
	if err != nil || got.Status != application.StatusApplying || len(got.StatusHistory) != 1 {
		t.Fatalf("expected untouched row after rollback: %v %+v", err, got)
	}
}

func TestGormUoW_WithinApplicationTx_NotFound(t *testing.T) {
	db := openTestDB(t)
	guow := NewGormUoW(db)

	err := guow.WithinApplicationTx(context.Background(), id.NewID32(), func(r uow.Repos, a *application.CreditApplication) error {
		t.Fatalf("callback should not be called when application missing")
		return nil
	})
	if !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
