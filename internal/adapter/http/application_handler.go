package http

import (
	"log/slog"
	"net/http"

	"mutualfund-backend/internal/infrastructure/logging"
	appuc "mutualfund-backend/internal/usecase/application"
	"mutualfund-backend/internal/usecase/guarantor"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ApplicationHandler struct {
	uc  *appuc.Usecase
	log *slog.Logger
}

func NewApplicationHandler(uc *appuc.Usecase, log *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, log: logging.OrDiscard(log)}
}

type guarantorReq struct {
	MemberID string              `json:"member_id" validate:"required,hex32"`
	Share    decimal.NullDecimal `json:"share"     validate:"omitempty,dpos,dec2"`
}

type submitApplicationReq struct {
	Amount         decimal.Decimal `json:"amount"          validate:"required,dpos,dec2"`
	DurationMonths int             `json:"duration_months" validate:"required,gte=1,lte=600"`
	Purpose        string          `json:"purpose"         validate:"required,max=255"`
	Description    string          `json:"description"     validate:"max=4000"`
	Guarantors     []guarantorReq  `json:"guarantors"      validate:"omitempty,dive"`
}

func toRequests(in []guarantorReq) []guarantor.Request {
	out := make([]guarantor.Request, 0, len(in))
	for _, g := range in {
		r := guarantor.Request{MemberID: g.MemberID}
		if g.Share.Valid {
			s := g.Share.Decimal
			r.Share = &s
		}
		out = append(out, r)
	}
	return out
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitApplicationReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Submit(c.Request().Context(), appuc.SubmitInput{
		ActorID:        caller(c),
		Amount:         req.Amount,
		DurationMonths: req.DurationMonths,
		Purpose:        req.Purpose,
		Description:    req.Description,
		Guarantors:     toRequests(req.Guarantors),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), caller(c), c.Param("application_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) ListMine(c echo.Context) error {
	items, err := h.uc.ListMine(c.Request().Context(), caller(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}
