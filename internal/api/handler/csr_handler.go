package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akti/portal-api/internal/core/domain"
	"github.com/akti/portal-api/internal/core/ports"
)

// CSRHandler serves the admin-scoped CSR management endpoints.
type CSRHandler struct {
	service ports.CSRService
}

func NewCSRHandler(service ports.CSRService) *CSRHandler {
	return &CSRHandler{service: service}
}

type createCSRRequest struct {
	FullName   string `json:"fullName" validate:"required"`
	Username   string `json:"username" validate:"required,min=3"`
	Email      string `json:"email"    validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	IsActive   *bool  `json:"isActive"`
	IsLeadRole bool   `json:"isLeadRole"`
}

type updateCSRRequest struct {
	FullName   *string `json:"fullName"`
	Username   *string `json:"username"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	IsActive   *bool   `json:"isActive"`
	IsLeadRole *bool   `json:"isLeadRole"`
}

type csrResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	CSR     *domain.Principal `json:"csr,omitempty"`
}

type csrListResponse struct {
	Success bool               `json:"success"`
	CSRs    []domain.Principal `json:"csrs"`
}

// Create handles POST /admin/csrs.
//
// @Summary      Add a CSR
// @Tags         csrs
// @Accept       json
// @Produce      json
// @Param        body  body      createCSRRequest  true  "CSR details"
// @Success      201   {object}  csrResponse
// @Router       /admin/csrs [post]
func (h *CSRHandler) Create(c echo.Context) error {
	var req createCSRRequest
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

	created, err := h.service.Create(c.Request().Context(), actor, ports.CreateCSRInput{
		FullName:   req.FullName,
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		IsActive:   req.IsActive,
		IsLeadRole: req.IsLeadRole,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, csrResponse{Success: true, Message: "CSR created successfully!", CSR: created})
}

// List handles GET /admin/csrs. Password hashes never serialize.
//
// @Summary      List CSRs
// @Tags         csrs
// @Produce      json
// @Success      200  {object}  csrListResponse
// @Router       /admin/csrs [get]
func (h *CSRHandler) List(c echo.Context) error {
	csrs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if csrs == nil {
		csrs = []domain.Principal{}
	}
	return c.JSON(http.StatusOK, csrListResponse{Success: true, CSRs: csrs})
}

// Get handles GET /admin/csrs/:id.
//
// @Summary      Get a CSR
// @Tags         csrs
// @Produce      json
// @Param        id   path      string  true  "CSR id"
// @Success      200  {object}  csrResponse
// @Failure      404  {object}  csrResponse
// @Router       /admin/csrs/{id} [get]
func (h *CSRHandler) Get(c echo.Context) error {
	csr, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, csrResponse{Success: true, CSR: csr})
}

// Update handles PUT /admin/csrs/:id.
//
// @Summary      Update a CSR
// @Tags         csrs
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "CSR id"
// @Param        body  body      updateCSRRequest  true  "Fields to update"
// @Success      200   {object}  csrResponse
// @Router       /admin/csrs/{id} [put]
func (h *CSRHandler) Update(c echo.Context) error {
	var req updateCSRRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateCSRInput{
		FullName:   req.FullName,
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		IsActive:   req.IsActive,
		IsLeadRole: req.IsLeadRole,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, csrResponse{Success: true, Message: "CSR updated successfully!", CSR: updated})
}

// Delete handles DELETE /admin/csrs/:id.
//
// @Summary      Delete a CSR
// @Tags         csrs
// @Produce      json
// @Param        id   path      string  true  "CSR id"
// @Success      200  {object}  csrResponse
// @Router       /admin/csrs/{id} [delete]
func (h *CSRHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, csrResponse{Success: true, Message: "CSR deleted successfully!"})
}
