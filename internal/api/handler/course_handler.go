package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akti/portal-api/internal/core/domain"
	"github.com/akti/portal-api/internal/core/ports"
)

// CourseHandler serves the admin-scoped course management endpoints.
type CourseHandler struct {
	service ports.CourseService
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

type courseDurationRequest struct {
	Weekend3Months  bool `json:"weekend3Months"`
	Weekdays2Months bool `json:"weekdays2Months"`
	OneMonth        bool `json:"oneMonth"`
	Levelwise       bool `json:"levelwise"`
}

type courseRequest struct {
	CourseName  string                `json:"courseName"  validate:"required"`
	TrainerName string                `json:"trainerName" validate:"required"`
	Price       *float64              `json:"price"       validate:"required,gte=0"`
	Duration    courseDurationRequest `json:"duration"`
}

type courseResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Course  *domain.Course `json:"course,omitempty"`
}

type courseListResponse struct {
	Success bool            `json:"success"`
	Courses []domain.Course `json:"courses"`
}

func (r *courseRequest) toInput() ports.CourseInput {
	return ports.CourseInput{
		CourseName:  r.CourseName,
		TrainerName: r.TrainerName,
		Price:       *r.Price,
		Duration: domain.CourseDuration{
			Weekend3Months:  r.Duration.Weekend3Months,
			Weekdays2Months: r.Duration.Weekdays2Months,
			OneMonth:        r.Duration.OneMonth,
			Levelwise:       r.Duration.Levelwise,
		},
	}
}

// Create handles POST /admin/courses.
//
// @Summary      Add a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        body  body      courseRequest  true  "Course details"
// @Success      201   {object}  courseResponse
// @Router       /admin/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req courseRequest
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

	created, err := h.service.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, courseResponse{Success: true, Message: "Course added successfully", Course: created})
}

// List handles GET /admin/courses, newest first.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Success      200  {object}  courseListResponse
// @Router       /admin/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if courses == nil {
		courses = []domain.Course{}
	}
	return c.JSON(http.StatusOK, courseListResponse{Success: true, Courses: courses})
}

// Get handles GET /admin/courses/:id.
//
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  courseResponse
// @Router       /admin/courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courseResponse{Success: true, Course: course})
}

// Update handles PUT /admin/courses/:id.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Course id"
// @Param        body  body      courseRequest  true  "Course details"
// @Success      200   {object}  courseResponse
// @Router       /admin/courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	var req courseRequest
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

	updated, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courseResponse{Success: true, Message: "Course updated successfully", Course: updated})
}

// Delete handles DELETE /admin/courses/:id.
//
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  courseResponse
// @Router       /admin/courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courseResponse{Success: true, Message: "Course deleted successfully"})
}
