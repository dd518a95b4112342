package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/akti/portal-api/internal/core/ports"
)

const reportMonths = 12

// ReportService aggregates counts for the admin reports page and both
// dashboards. All figures are computed server-side with count queries;
// nothing is sampled or simulated.
type ReportService struct {
	csrs      ports.CSRRepository
	courses   ports.CourseRepository
	students  ports.StudentRepository
	coworkers ports.CoWorkerRepository
	logger    zerolog.Logger
	now       func() time.Time
}

func NewReportService(
	csrs ports.CSRRepository,
	courses ports.CourseRepository,
	students ports.StudentRepository,
	coworkers ports.CoWorkerRepository,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		csrs:      csrs,
		courses:   courses,
		students:  students,
		coworkers: coworkers,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *ReportService) AdminReport(ctx context.Context) (*ports.AdminReport, error) {
	report := &ports.AdminReport{}

	var err error
	if report.TotalCSRs, err = s.csrs.Count(ctx); err != nil {
		return nil, err
	}
	if report.ActiveCSRs, err = s.csrs.CountActive(ctx); err != nil {
		return nil, err
	}
	if report.TotalCoWorkers, err = s.coworkers.Count(ctx); err != nil {
		return nil, err
	}
	if report.TotalStudents, err = s.students.Count(ctx); err != nil {
		return nil, err
	}

	// Trailing twelve calendar months, oldest first.
	now := s.now().UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := reportMonths - 1; i >= 0; i-- {
		from := current.AddDate(0, -i, 0)
		to := from.AddDate(0, 1, 0)
		report.Months = append(report.Months, from.Format("Jan"))

		n, err := s.csrs.CountCreatedBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		report.MonthlyCSRs = append(report.MonthlyCSRs, n)

		n, err = s.coworkers.CountCreatedBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		report.MonthlyCoWorkers = append(report.MonthlyCoWorkers, n)

		n, err = s.students.CountCreatedBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		report.MonthlyStudents = append(report.MonthlyStudents, n)
	}

	return report, nil
}

func (s *ReportService) AdminDashboard(ctx context.Context) (*ports.AdminDashboard, error) {
	dash := &ports.AdminDashboard{}

	var err error
	if dash.TotalCSRs, err = s.csrs.Count(ctx); err != nil {
		return nil, err
	}
	if dash.ActiveCSRs, err = s.csrs.CountActive(ctx); err != nil {
		return nil, err
	}
	if dash.TotalCourses, err = s.courses.Count(ctx); err != nil {
		return nil, err
	}
	if dash.TotalStudents, err = s.students.Count(ctx); err != nil {
		return nil, err
	}
	if dash.TotalCoWorkers, err = s.coworkers.Count(ctx); err != nil {
		return nil, err
	}
	return dash, nil
}

func (s *ReportService) CSRDashboard(ctx context.Context) (*ports.CSRDashboard, error) {
	dash := &ports.CSRDashboard{}

	var err error
	if dash.TotalStudents, err = s.students.Count(ctx); err != nil {
		return nil, err
	}
	if dash.TotalCoWorkers, err = s.coworkers.Count(ctx); err != nil {
		return nil, err
	}
	return dash, nil
}
