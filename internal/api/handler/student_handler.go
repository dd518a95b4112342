package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akti/portal-api/internal/core/domain"
	"github.com/akti/portal-api/internal/core/ports"
)

// StudentHandler serves the CSR-scoped student management endpoints.
type StudentHandler struct {
	service ports.StudentService
}

func NewStudentHandler(service ports.StudentService) *StudentHandler {
	return &StudentHandler{service: service}
}

type studentRequest struct {
	Name         string `json:"name"         validate:"required"`
	GuardianName string `json:"guardianName" validate:"required"`
	Email        string `json:"email"        validate:"required,email"`
	Phone        string `json:"phone"        validate:"required,len=11,numeric"`
}

type studentResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Student *domain.Student `json:"student,omitempty"`
}

type studentListResponse struct {
	Success  bool             `json:"success"`
	Students []domain.Student `json:"students"`
}

// Create handles POST /csr/students.
//
// @Summary      Add a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        body  body      studentRequest  true  "Student details"
// @Success      201   {object}  studentResponse
// @Router       /csr/students [post]
func (h *StudentHandler) Create(c echo.Context) error {
	var req studentRequest
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

	created, err := h.service.Create(c.Request().Context(), actor, ports.StudentInput{
		Name:         req.Name,
		GuardianName: req.GuardianName,
		Email:        req.Email,
		Phone:        req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, studentResponse{Success: true, Message: "Student added successfully", Student: created})
}

// List handles GET /csr/students.
//
// @Summary      List students
// @Tags         students
// @Produce      json
// @Success      200  {object}  studentListResponse
// @Router       /csr/students [get]
func (h *StudentHandler) List(c echo.Context) error {
	students, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if students == nil {
		students = []domain.Student{}
	}
	return c.JSON(http.StatusOK, studentListResponse{Success: true, Students: students})
}

// Get handles GET /csr/students/:id.
//
// @Summary      Get a student
// @Tags         students
// @Produce      json
// @Param        id   path      string  true  "Student id"
// @Success      200  {object}  studentResponse
// @Router       /csr/students/{id} [get]
func (h *StudentHandler) Get(c echo.Context) error {
	student, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, studentResponse{Success: true, Student: student})
}

// Update handles PUT /csr/students/:id.
//
// @Summary      Update a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Student id"
// @Param        body  body      studentRequest  true  "Student details"
// @Success      200   {object}  studentResponse
// @Router       /csr/students/{id} [put]
func (h *StudentHandler) Update(c echo.Context) error {
	var req studentRequest
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

	updated, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.StudentInput{
		Name:         req.Name,
		GuardianName: req.GuardianName,
		Email:        req.Email,
		Phone:        req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, studentResponse{Success: true, Message: "Student updated successfully", Student: updated})
}

// Delete handles DELETE /csr/students/:id.
//
// @Summary      Delete a student
// @Tags         students
// @Produce      json
// @Param        id   path      string  true  "Student id"
// @Success      200  {object}  studentResponse
// @Router       /csr/students/{id} [delete]
func (h *StudentHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, studentResponse{Success: true, Message: "Student deleted successfully"})
}
