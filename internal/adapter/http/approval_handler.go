package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/infrastructure/logging"
	"mutualfund-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ApprovalHandler struct {
	uc  *approval.Usecase
	log *slog.Logger
}

func NewApprovalHandler(uc *approval.Usecase, log *slog.Logger) *ApprovalHandler {
	return &ApprovalHandler{uc: uc, log: logging.OrDiscard(log)}
}

type actionReq struct {
	Action            string              `json:"action"             validate:"required,oneof=start_review approve reject escalate request_more_info"`
	Notes             string              `json:"notes"              validate:"max=4000"`
	Conditions        string              `json:"conditions"         validate:"max=4000"`
	RecommendedAmount decimal.NullDecimal `json:"recommended_amount" validate:"omitempty,dpos,dec2"`
	// Version is the application version the reviewer acted on; 0 means current.
	// Without it a reviewer who loses a race sees the winner's state (usually 409
	// INVALID_TRANSITION) instead of 409 CONCURRENT_MODIFICATION.
	Version int64 `json:"version" validate:"gte=0"`
}

type disburseReq struct {
	Amount  decimal.NullDecimal `json:"amount"  validate:"omitempty,dpos,dec2"`
	Version int64               `json:"version" validate:"gte=0"`
}

func (h *ApprovalHandler) Queue(c echo.Context) error {
	restricted, _ := strconv.ParseBool(c.QueryParam("include_restricted"))
	items, err := h.uc.Queue(c.Request().Context(), approval.QueueInput{
		ActorID:           caller(c),
		IncludeRestricted: restricted,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// Act records one reviewer action. Clients that must detect a lost race send the
// version they displayed; the write is then refused with CONCURRENT_MODIFICATION.
func (h *ApprovalHandler) Act(c echo.Context) error {
	var req actionReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Act(c.Request().Context(), approval.ActInput{
		ActorID:           caller(c),
		ApplicationID:     c.Param("application_id"),
		Action:            application.Action(req.Action),
		Notes:             req.Notes,
		Conditions:        req.Conditions,
		RecommendedAmount: req.RecommendedAmount,
		Version:           req.Version,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) Disburse(c echo.Context) error {
	var req disburseReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.Disburse(c.Request().Context(), approval.DisburseInput{
		ActorID:       caller(c),
		ApplicationID: c.Param("application_id"),
		Amount:        req.Amount,
		Version:       req.Version,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}
