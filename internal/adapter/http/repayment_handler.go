package http

import (
	"log/slog"
	"net/http"

	"mutualfund-backend/internal/infrastructure/logging"
	"mutualfund-backend/internal/usecase/repayment"

	"github.com/labstack/echo/v4"
)

type RepaymentHandler struct {
	uc  *repayment.Usecase
	log *slog.Logger
}

func NewRepaymentHandler(uc *repayment.Usecase, log *slog.Logger) *RepaymentHandler {
	return &RepaymentHandler{uc: uc, log: logging.OrDiscard(log)}
}

func (h *RepaymentHandler) Schedule(c echo.Context) error {
	dto, err := h.uc.Schedule(c.Request().Context(), caller(c), c.Param("application_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RepaymentHandler) ListMine(c echo.Context) error {
	dto, err := h.uc.ListMine(c.Request().Context(), caller(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RepaymentHandler) Pay(c echo.Context) error {
	dto, err := h.uc.Pay(c.Request().Context(), repayment.PayInput{
		ActorID:       caller(c),
		InstallmentID: c.Param("installment_id"),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
