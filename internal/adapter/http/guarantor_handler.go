package http

import (
	"log/slog"
	"net/http"

	domain "mutualfund-backend/internal/domain/guarantor"
	"mutualfund-backend/internal/infrastructure/logging"
	"mutualfund-backend/internal/usecase/guarantor"

	"github.com/labstack/echo/v4"
)

type GuarantorHandler struct {
	uc  *guarantor.Usecase
	log *slog.Logger
}

func NewGuarantorHandler(uc *guarantor.Usecase, log *slog.Logger) *GuarantorHandler {
	return &GuarantorHandler{uc: uc, log: logging.OrDiscard(log)}
}

type attachReq struct {
	Guarantors []guarantorReq `json:"guarantors" validate:"required,min=1,dive"`
}

type respondReq struct {
	Decision string `json:"decision" validate:"required,oneof=accepted declined"`
}

func (h *GuarantorHandler) Attach(c echo.Context) error {
	var req attachReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	items, err := h.uc.Attach(c.Request().Context(), guarantor.AttachInput{
		ActorID:       caller(c),
		ApplicationID: c.Param("application_id"),
		Guarantors:    toRequests(req.Guarantors),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"items": items})
}

func (h *GuarantorHandler) Eligible(c echo.Context) error {
	items, err := h.uc.Eligible(c.Request().Context(), caller(c), c.QueryParam("country"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *GuarantorHandler) Requests(c echo.Context) error {
	items, err := h.uc.Requests(c.Request().Context(), caller(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *GuarantorHandler) Respond(c echo.Context) error {
	var req respondReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Respond(c.Request().Context(), guarantor.RespondInput{
		ActorID:      caller(c),
		AssignmentID: c.Param("assignment_id"),
		Decision:     domain.Status(req.Decision),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
