package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/apperr"
	"mutualfund-backend/internal/domain/guarantor"
	"mutualfund-backend/internal/domain/member"
	"mutualfund-backend/internal/domain/role"
	"mutualfund-backend/internal/domain/sysconfig"
	"mutualfund-backend/internal/domain/uow"
	"mutualfund-backend/internal/testutil/applicationmock"
	"mutualfund-backend/internal/testutil/configmock"
	"mutualfund-backend/internal/testutil/dbtest"
	"mutualfund-backend/internal/testutil/guarantormock"
	"mutualfund-backend/internal/testutil/membermock"
	"mutualfund-backend/internal/testutil/uowmock"
	appuc "mutualfund-backend/internal/usecase/application"

	"github.com/shopspring/decimal"
)

type fixture struct {
	apps      *applicationmock.Repo
	decisions *applicationmock.DecisionRepo
	guars     *guarantormock.Repo
	cfg       *configmock.Repo
	uc        *Usecase
}

func newFixture(t *testing.T, edit func(cfg *sysconfig.SystemConfig, a *domain.Application)) *fixture {
	t.Helper()
	cfg := dbtest.DefaultConfig()
	stored := domain.Application{
		ID:             7,
		ApplicationID:  "APP-1",
		MemberID:       "applicant",
		Amount:         decimal.NewFromInt(800),
		DurationMonths: 4,
		Purpose:        "school fees",
		Status:         domain.StatusPending,
		RequiredLevel:  role.CountryCoordinator,
		Version:        1,
	}
	if edit != nil {
		edit(&cfg, &stored)
	}
	f := &fixture{
		decisions: &applicationmock.DecisionRepo{},
		guars:     &guarantormock.Repo{},
		cfg:       &configmock.Repo{Current: &cfg},
	}
	f.apps = &applicationmock.Repo{
		GetByApplicationIDFn: func(context.Context, string) (*domain.Application, error) {
			cp := stored
			return &cp, nil
		},
		GetByApplicationIDForUpdateFn: func(context.Context, string) (*domain.Application, error) {
			cp := stored
			return &cp, nil
		},
	}
	dir := membermock.New(
		&member.Member{MemberID: "applicant", Country: "KE", Role: role.Member, Active: true},
		&member.Member{MemberID: "cc-ke", Country: "KE", Role: role.CountryCoordinator, Active: true},
		&member.Member{MemberID: "cc-ug", Country: "UG", Role: role.CountryCoordinator, Active: true},
		&member.Member{MemberID: "fa", Country: "UG", Role: role.FundAdmin, Active: true},
		&member.Member{MemberID: "ga", Country: "UG", Role: role.GeneralAdmin, Active: true},
		&member.Member{MemberID: "plain", Country: "KE", Role: role.Member, Active: true},
	)
	repos := uow.Repos{Applications: f.apps, Decisions: f.decisions, Guarantors: f.guars, Members: dir, Config: f.cfg}
	f.uc = NewUsecase(repos, uowmock.Passthrough(repos), nil).
		WithClock(func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) })
	return f
}

func TestUsecase_Act(t *testing.T) {
	ctx := context.Background()
	rec := func(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }

	tests := []struct {
		name    string
		edit    func(cfg *sysconfig.SystemConfig, a *domain.Application)
		setup   func(f *fixture)
		in      ActInput
		wantErr error
		check   func(t *testing.T, f *fixture, dto *appuc.ApplicationDTO)
	}{
		{
			name: "coordinator approves within ceiling",
			in:   ActInput{ActorID: "cc-ke", ApplicationID: "APP-1", Action: domain.ActionApprove, Version: 1},
			check: func(t *testing.T, f *fixture, dto *appuc.ApplicationDTO) {
				if dto.Status != domain.StatusApproved || dto.Version != 2 {
					t.Fatalf("want approved v2, got %s v%d", dto.Status, dto.Version)
				}
				if !dto.ApprovedAmount.Valid || !dto.ApprovedAmount.Decimal.Equal(decimal.NewFromInt(800)) {
					t.Fatalf("approved amount: %+v", dto.ApprovedAmount)
				}
				if len(f.decisions.Appended) != 1 || f.decisions.Appended[0].Seq != 2 {
					t.Fatalf("decision log: %+v", f.decisions.Appended)
				}
			},
		},
		{
			name: "recommended amount above ceiling",
			in: ActInput{ActorID: "cc-ke", ApplicationID: "APP-1", Action: domain.ActionApprove,
				RecommendedAmount: rec(1200), Version: 1},
			wantErr: apperr.ErrInsufficientAuthority,
		},
		{
			name: "fund admin approves a recommended lower amount",
			in: ActInput{ActorID: "fa", ApplicationID: "APP-1", Action: domain.ActionApprove,
				RecommendedAmount: rec(600), Version: 1},
			check: func(t *testing.T, f *fixture, dto *appuc.ApplicationDTO) {
				if !dto.ApprovedAmount.Decimal.Equal(decimal.NewFromInt(600)) {
					t.Fatalf("want approved 600, got %s", dto.ApprovedAmount.Decimal)
				}
			},
		},
		{
			name:    "reviewer outside country",
			in:      ActInput{ActorID: "cc-ug", ApplicationID: "APP-1", Action: domain.ActionApprove, Version: 1},
			wantErr: apperr.ErrNotAuthorized,
		},
		{
			name:    "plain member cannot act",
			in:      ActInput{ActorID: "plain", ApplicationID: "APP-1", Action: domain.ActionReject, Version: 1},
			wantErr: apperr.ErrNotAuthorized,
		},
		{
			name: "reviewer cannot decide own application",
			edit: func(_ *sysconfig.SystemConfig, a *domain.Application) { a.MemberID = "cc-ke" },
			in:   ActInput{ActorID: "cc-ke", ApplicationID: "APP-1", Action: domain.ActionApprove, Version: 1},
			wantErr: apperr.ErrNotAuthorized,
		},
		{
			name:    "stale version",
			in:      ActInput{ActorID: "cc-ke", ApplicationID: "APP-1", Action: domain.ActionApprove, Version: 3},
			wantErr: apperr.ErrConcurrentModification,
		},
		{
			name: "lost the versioned update",
			setup: func(f *fixture) {
				f.apps.UpdateVersionedFn = func(context.Context, *domain.Application, int64) (bool, error) { return false, nil }
			},
			in:      ActInput{ActorID: "cc-ke", ApplicationID: "APP-1", Action: domain.ActionApprove, Version: 1},
			wantErr: apperr.ErrConcurrentModification,
			check: func(t *testing.T, f *fixture, _ *appuc.ApplicationDTO) {
				if len(f.decisions.Appended) != 0 {
					t.Fatalf("no decision should be appended, got %d", len(f.decisions.Appended))
				}
			},
		},
		{
			name: "coordinator escalates to fund admin",
			in:   ActInput{ActorID: "cc-ke", ApplicationID: "APP-1", Action: domain.ActionEscalate, Notes: "large family", Version: 1},
			check: func(t *testing.T, f *fixture, dto *appuc.ApplicationDTO) {
				if dto.Status != domain.StatusRequiresHigherApproval || dto.RequiredLevel != role.FundAdmin {
					t.Fatalf("want requires_higher_approval at fund_admin, got %s at %s", dto.Status, dto.RequiredLevel)
				}
			},
		},
		{
			name: "escalate at the top",
			edit: func(_ *sysconfig.SystemConfig, a *domain.Application) {
				a.RequiredLevel = role.GeneralAdmin
				a.Status = domain.StatusRequiresHigherApproval
			},
			in:      ActInput{ActorID: "ga", ApplicationID: "APP-1", Action: domain.ActionEscalate, Version: 1},
			wantErr: apperr.ErrAlreadyAtTop,
		},
		{
			name: "approval waits for guarantor consent",
			edit: func(cfg *sysconfig.SystemConfig, _ *domain.Application) { cfg.RequireGuarantorConsensus = true },
			setup: func(f *fixture) {
				f.guars.ListByApplicationFn = func(context.Context, uint64) ([]guarantor.Assignment, error) {
					return []guarantor.Assignment{{Status: guarantor.StatusAccepted}, {Status: guarantor.StatusPending}}, nil
				}
			},
			in:      ActInput{ActorID: "cc-ke", ApplicationID: "APP-1", Action: domain.ActionApprove, Version: 1},
			wantErr: apperr.ErrGuarantorConsensusRequired,
		},
		{
			name: "tightened ceiling blocks the coordinator",
			edit: func(cfg *sysconfig.SystemConfig, _ *domain.Application) {
				cfg.CountryCoordinatorLimit = decimal.NewFromInt(500)
			},
			in:      ActInput{ActorID: "cc-ke", ApplicationID: "APP-1", Action: domain.ActionReject, Version: 1},
			wantErr: apperr.ErrInsufficientAuthority,
		},
		{
			name:    "disburse is not a reviewer action",
			in:      ActInput{ActorID: "fa", ApplicationID: "APP-1", Action: domain.ActionDisburse, Version: 1},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "recommended amount on reject",
			in: ActInput{ActorID: "cc-ke", ApplicationID: "APP-1", Action: domain.ActionReject,
				RecommendedAmount: rec(100), Version: 1},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "zero version uses the current one",
			in:   ActInput{ActorID: "cc-ke", ApplicationID: "APP-1", Action: domain.ActionStartReview},
			check: func(t *testing.T, _ *fixture, dto *appuc.ApplicationDTO) {
				if dto.Status != domain.StatusUnderReview {
					t.Fatalf("want under_review, got %s", dto.Status)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.edit)
			if tt.setup != nil {
				tt.setup(f)
			}
			dto, err := f.uc.Act(ctx, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, f, dto)
			}
		})
	}
}
