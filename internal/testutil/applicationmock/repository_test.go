package applicationmock

import (
	"context"
	"errors"
	"testing"

	domain "sme-credit-backend/internal/domain/application"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	a := &domain.CreditApplication{ApplicationID: "app-1"}

	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.CreditApplication) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("Create ctx mismatch")
			}
			if got != a {
				t.Fatalf("Create arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, a); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op, nil error
	m = &Repo{}
	if err := m.Create(ctx, a); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_Lookups_DefaultNotFound(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if _, err := m.GetByApplicationID(ctx, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByApplicationID default: want ErrNotFound, got %v", err)
	}
	if _, err := m.GetByApplicationIDForUpdate(ctx, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByApplicationIDForUpdate default: want ErrNotFound, got %v", err)
	}
	if _, err := m.GetActiveByCompanyID(ctx, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetActiveByCompanyID default: want ErrNotFound, got %v", err)
	}
	if n, err := m.LatestNumber(ctx, "#CRD-2025-"); err != nil || n != "" {
		t.Fatalf("LatestNumber default: want empty, got %q %v", n, err)
	}
	if items, total, err := m.List(ctx, domain.ListFilter{}); err != nil || items != nil || total != 0 {
		t.Fatalf("List default: want empty page, got %v %d %v", items, total, err)
	}
}

func TestRepo_SaveTransition_ForwardsFrom(t *testing.T) {
	ctx := context.Background()
	a := &domain.CreditApplication{Status: domain.StatusSubmitted}
	var gotFrom domain.Status
	m := &Repo{
		SaveTransitionFn: func(_ context.Context, got *domain.CreditApplication, from domain.Status) error {
			if got != a {
				t.Fatalf("SaveTransition arg mismatch")
			}
			gotFrom = from
			return nil
		},
	}
	if err := m.SaveTransition(ctx, a, domain.StatusApplying); err != nil {
		t.Fatalf("SaveTransition: unexpected err: %v", err)
	}
	if gotFrom != domain.StatusApplying {
		t.Fatalf("SaveTransition from: want APPLYING, got %s", gotFrom)
	}
}

func TestRepo_ListByOwner(t *testing.T) {
	want := []domain.CreditApplication{{ApplicationID: "a"}, {ApplicationID: "b"}}
	m := &Repo{
		ListByOwnerFn: func(_ context.Context, ownerID string) ([]domain.CreditApplication, error) {
			if ownerID != "owner-1" {
				t.Fatalf("ownerID mismatch: %s", ownerID)
			}
			return want, nil
		},
	}
	got, err := m.ListByOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner: unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByOwner: want 2 items, got %d", len(got))
	}
}
