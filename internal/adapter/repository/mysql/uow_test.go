package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	appDomain "mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/role"
	"mutualfund-backend/internal/domain/uow"

	"gorm.io/gorm"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	a := makeApplication(memberA, 500, 100, time.Now())
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		return r.Decisions.Append(ctx, &appDomain.Decision{
			ApplicationID: a.ID, Seq: 1, ActorID: memberA, ActorRole: role.Member,
			Action: appDomain.ActionSubmit, ResultStatus: appDomain.StatusPending, CreatedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}
	if _, err := NewApplicationRepository(db).GetByApplicationID(ctx, a.ApplicationID); err != nil {
		t.Fatalf("application not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	boom := errors.New("boom")

	a := makeApplication(memberA, 500, 100, time.Now())
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	_, err = NewApplicationRepository(db).GetByApplicationID(ctx, a.ApplicationID)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found after rollback, got %v", err)
	}
}

func TestGormUoW_WithinApplicationTx(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	a := makeApplication(memberA, 500, 100, time.Now())
	if err := NewApplicationRepository(db).Create(ctx, a); err != nil {
		t.Fatal(err)
	}

	err := guow.WithinApplicationTx(ctx, a.ApplicationID, func(r uow.Repos, got *appDomain.Application) error {
		if got.ID != a.ID {
			t.Fatalf("locked wrong row: %d", got.ID)
		}
		got.Status = appDomain.StatusUnderReview
		got.Version = 2
		ok, err := r.Applications.UpdateVersioned(ctx, got, 1)
		if !ok {
			t.Fatalf("update not applied")
		}
		return err
	})
	if err != nil {
		t.Fatalf("WithinApplicationTx: %v", err)
	}

	err = guow.WithinApplicationTx(ctx, "ffffffffffffffffffffffffffffffff", func(uow.Repos, *appDomain.Application) error {
		t.Fatal("fn must not run for a missing application")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}
