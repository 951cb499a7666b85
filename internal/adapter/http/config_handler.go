package http

import (
	"log/slog"
	"net/http"

	domain "mutualfund-backend/internal/domain/sysconfig"
	"mutualfund-backend/internal/infrastructure/logging"
	"mutualfund-backend/internal/usecase/sysconfig"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ConfigHandler struct {
	uc  *sysconfig.Usecase
	log *slog.Logger
}

func NewConfigHandler(uc *sysconfig.Usecase, log *slog.Logger) *ConfigHandler {
	return &ConfigHandler{uc: uc, log: logging.OrDiscard(log)}
}

// updateConfigReq: absent fields are unchanged. The clear_* flags remove an optional cap.
type updateConfigReq struct {
	CountryCoordinatorLimit    *decimal.Decimal `json:"country_coordinator_limit"     validate:"omitempty,dnonneg,dec2"`
	FundAdminLimit             *decimal.Decimal `json:"fund_admin_limit"              validate:"omitempty,dnonneg,dec2"`
	MinimumDepositForGuarantor *decimal.Decimal `json:"minimum_deposit_for_guarantor" validate:"omitempty,dnonneg,dec2"`
	PriorityWeight             *int             `json:"priority_weight"               validate:"omitempty,gte=0,lte=100"`
	PriorityPenalty            *int             `json:"priority_penalty_per_finance"  validate:"omitempty,gte=0"`
	MaxLoanAmount              *decimal.Decimal `json:"max_loan_amount"               validate:"omitempty,dpos,dec2"`
	ClearMaxLoanAmount         bool             `json:"clear_max_loan_amount"`
	MaxLoanDurationMonths      *int             `json:"max_loan_duration_months"      validate:"omitempty,gte=1"`
	ClearMaxLoanDuration       bool             `json:"clear_max_loan_duration_months"`
	RequireGuarantorConsensus  *bool            `json:"require_guarantor_consensus"`
	Version                    *int64           `json:"version"                       validate:"omitempty,gte=1"`
}

func (h *ConfigHandler) Get(c echo.Context) error {
	cfg, err := h.uc.Get(c.Request().Context(), caller(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *ConfigHandler) Update(c echo.Context) error {
	var req updateConfigReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	cfg, err := h.uc.Update(c.Request().Context(), sysconfig.UpdateInput{
		ActorID: caller(c),
		Patch: domain.Patch{
			CountryCoordinatorLimit:    req.CountryCoordinatorLimit,
			FundAdminLimit:             req.FundAdminLimit,
			MinimumDepositForGuarantor: req.MinimumDepositForGuarantor,
			PriorityWeight:             req.PriorityWeight,
			PriorityPenalty:            req.PriorityPenalty,
			MaxLoanAmount:              req.MaxLoanAmount,
			ClearMaxLoanAmount:         req.ClearMaxLoanAmount,
			MaxLoanDurationMonths:      req.MaxLoanDurationMonths,
			ClearMaxLoanDuration:       req.ClearMaxLoanDuration,
			RequireGuarantorConsensus:  req.RequireGuarantorConsensus,
		},
		Version: req.Version,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, cfg)
}
