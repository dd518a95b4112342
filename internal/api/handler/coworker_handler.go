package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akti/portal-api/internal/core/domain"
	"github.com/akti/portal-api/internal/core/ports"
)

// CoWorkerHandler serves the CSR-scoped co-worker endpoints.
type CoWorkerHandler struct {
	service ports.CoWorkerService
}

func NewCoWorkerHandler(service ports.CoWorkerService) *CoWorkerHandler {
	return &CoWorkerHandler{service: service}
}

type coWorkerRequest struct {
	FullName  string `json:"fullName" validate:"required"`
	CNIC      string `json:"cnic"     validate:"required"`
	Reference string `json:"reference"`
	Purpose   string `json:"purpose"`
}

type coWorkerResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	CoWorker *domain.CoWorker `json:"coWorker,omitempty"`
}

type coWorkerListResponse struct {
	Success   bool              `json:"success"`
	CoWorkers []domain.CoWorker `json:"coWorkers"`
}

// Create handles POST /csr/co-workers.
//
// @Summary      Add a co-worker
// @Tags         co-workers
// @Accept       json
// @Produce      json
// @Param        body  body      coWorkerRequest  true  "Co-worker details"
// @Success      201   {object}  coWorkerResponse
// @Router       /csr/co-workers [post]
func (h *CoWorkerHandler) Create(c echo.Context) error {
	var req coWorkerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), actor, ports.CoWorkerInput{
		FullName:  req.FullName,
		CNIC:      req.CNIC,
		Reference: req.Reference,
		Purpose:   req.Purpose,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, coWorkerResponse{Success: true, Message: "Co-worker added successfully", CoWorker: created})
}

// List handles GET /csr/co-workers.
//
// @Summary      List co-workers
// @Tags         co-workers
// @Produce      json
// @Success      200  {object}  coWorkerListResponse
// @Router       /csr/co-workers [get]
func (h *CoWorkerHandler) List(c echo.Context) error {
	coworkers, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if coworkers == nil {
		coworkers = []domain.CoWorker{}
	}
	return c.JSON(http.StatusOK, coWorkerListResponse{Success: true, CoWorkers: coworkers})
}

// Get handles GET /csr/co-workers/:id.
//
// @Summary      Get a co-worker
// @Tags         co-workers
// @Produce      json
// @Param        id   path      string  true  "Co-worker id"
// @Success      200  {object}  coWorkerResponse
// @Router       /csr/co-workers/{id} [get]
func (h *CoWorkerHandler) Get(c echo.Context) error {
	cw, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coWorkerResponse{Success: true, CoWorker: cw})
}

// Update handles PUT /csr/co-workers/:id.
//
// @Summary      Update a co-worker
// @Tags         co-workers
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Co-worker id"
// @Param        body  body      coWorkerRequest  true  "Co-worker details"
// @Success      200   {object}  coWorkerResponse
// @Router       /csr/co-workers/{id} [put]
func (h *CoWorkerHandler) Update(c echo.Context) error {
	var req coWorkerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.CoWorkerInput{
		FullName:  req.FullName,
		CNIC:      req.CNIC,
		Reference: req.Reference,
		Purpose:   req.Purpose,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coWorkerResponse{Success: true, Message: "Co-worker updated successfully", CoWorker: updated})
}

// Delete handles DELETE /csr/co-workers/:id.
//
// @Summary      Delete a co-worker
// @Tags         co-workers
// @Produce      json
// @Param        id   path      string  true  "Co-worker id"
// @Success      200  {object}  coWorkerResponse
// @Router       /csr/co-workers/{id} [delete]
func (h *CoWorkerHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coWorkerResponse{Success: true, Message: "Co-worker deleted successfully"})
}
