package mysql

import (
	"context"
	"testing"
	"time"

	guarantorDomain "mutualfund-backend/internal/domain/guarantor"
	"mutualfund-backend/pkg/id"

	"github.com/shopspring/decimal"
)

func TestGuarantor_CreateListRespond(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuarantorRepository(db)
	apps := NewApplicationRepository(db)
	ctx := context.Background()

	a := makeApplication(memberA, 1000, 100, time.Now())
	if err := apps.Create(ctx, a); err != nil {
		t.Fatal(err)
	}
	g := &guarantorDomain.Assignment{
		AssignmentID:  id.NewID32(),
		ApplicationID: a.ID,
		GuarantorID:   "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Share:         decimal.NewFromInt(600),
		Status:        guarantorDomain.StatusPending,
		RequestedAt:   time.Now().UTC(),
	}
	if err := repo.Create(ctx, g); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// same guarantor twice on one application is rejected by the unique index
	dup := *g
	dup.ID = 0
	dup.AssignmentID = id.NewID32()
	if err := repo.Create(ctx, &dup); err == nil {
		t.Fatalf("expected unique violation")
	}

	list, err := repo.ListByApplication(ctx, a.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByApplication = %d, %v", len(list), err)
	}
	mine, err := repo.ListByGuarantor(ctx, g.GuarantorID)
	if err != nil || len(mine) != 1 {
		t.Fatalf("ListByGuarantor = %d, %v", len(mine), err)
	}

	ok, err := repo.Respond(ctx, g.ID, guarantorDomain.StatusAccepted, time.Now().UTC())
	if err != nil || !ok {
		t.Fatalf("first Respond ok=%v err=%v", ok, err)
	}
	ok, err = repo.Respond(ctx, g.ID, guarantorDomain.StatusDeclined, time.Now().UTC())
	if err != nil {
		t.Fatalf("second Respond err: %v", err)
	}
	if ok {
		t.Fatalf("second Respond must not overwrite")
	}

	got, err := repo.GetByAssignmentID(ctx, g.AssignmentID)
	if err != nil {
		t.Fatalf("GetByAssignmentID: %v", err)
	}
	if got.Status != guarantorDomain.StatusAccepted || got.RespondedAt == nil {
		t.Fatalf("unexpected assignment: %+v", got)
	}
}
