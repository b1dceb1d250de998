package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-bff/internal/api/middleware"
	"github.com/inkpost/blog-bff/internal/core/ports"
)

// OperationHandler exposes the orchestrated operation catalog over a single
// route. The operation name travels in the path, the token in the auth
// header, and the operation-specific arguments as the JSON body.
type OperationHandler struct {
	orch ports.Orchestrator
}

func NewOperationHandler(orch ports.Orchestrator) *OperationHandler {
	return &OperationHandler{orch: orch}
}

// Execute runs a named operation.
//
// The response is always HTTP 200 with an operation envelope — denials,
// validation failures and upstream failures included — so the client has a
// single uniform shape to render.
//
// @Summary      Execute an orchestrated operation
// @Tags         operations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        operation  path      string  true  "Operation name (e.g. addPostComment)"
// @Param        body       body      object  false "Operation arguments"
// @Success      200        {object}  ports.Envelope
// @Router       /v1/operations/{operation} [post]
func (h *OperationHandler) Execute(c echo.Context) error {
	name := c.Param("operation")
	token, _ := c.Get(middleware.TokenKey).(string)

	args, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	env := h.orch.Execute(c.Request().Context(), token, name, json.RawMessage(args))
	return c.JSON(http.StatusOK, env)
}
