package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/akti/portal-api/internal/core/domain"
)

type stubCourseRepo struct {
	courses map[string]*domain.Course
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{courses: make(map[string]*domain.Course)}
}

func (r *stubCourseRepo) Create(_ context.Context, c *domain.Course) (*domain.Course, error) {
	clone := *c
	if clone.ID == "" {
		clone.ID = c.CourseName
	}
	r.courses[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCourseRepo) List(_ context.Context) ([]domain.Course, error) {
	out := make([]domain.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCourseRepo) Update(_ context.Context, c *domain.Course) error {
	if _, ok := r.courses[c.ID]; !ok {
		return domain.ErrCourseNotFound
	}
	clone := *c
	r.courses[c.ID] = &clone
	return nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *stubCourseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.courses)), nil
}

type stubStudentRepo struct {
	students []domain.Student
}

func (r *stubStudentRepo) Create(_ context.Context, s *domain.Student) (*domain.Student, error) {
	clone := *s
	r.students = append(r.students, clone)
	return &clone, nil
}

func (r *stubStudentRepo) FindByID(_ context.Context, id string) (*domain.Student, error) {
	for _, s := range r.students {
		if s.ID == id {
			clone := s
			return &clone, nil
		}
	}
	return nil, domain.ErrStudentNotFound
}

func (r *stubStudentRepo) List(_ context.Context) ([]domain.Student, error) {
	return append([]domain.Student(nil), r.students...), nil
}

func (r *stubStudentRepo) Update(_ context.Context, _ *domain.Student) error { return nil }

func (r *stubStudentRepo) Delete(_ context.Context, _ string) error { return nil }

func (r *stubStudentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.students)), nil
}

func (r *stubStudentRepo) CountCreatedBetween(_ context.Context, from, to time.Time) (int64, error) {
	var n int64
	for _, s := range r.students {
		if !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

type stubCoWorkerRepo struct {
	coworkers []domain.CoWorker
}

func (r *stubCoWorkerRepo) Create(_ context.Context, cw *domain.CoWorker) (*domain.CoWorker, error) {
	clone := *cw
	r.coworkers = append(r.coworkers, clone)
	return &clone, nil
}

func (r *stubCoWorkerRepo) FindByID(_ context.Context, id string) (*domain.CoWorker, error) {
	for _, cw := range r.coworkers {
		if cw.ID == id {
			clone := cw
			return &clone, nil
		}
	}
	return nil, domain.ErrCoWorkerNotFound
}

func (r *stubCoWorkerRepo) List(_ context.Context) ([]domain.CoWorker, error) {
	return append([]domain.CoWorker(nil), r.coworkers...), nil
}

func (r *stubCoWorkerRepo) Update(_ context.Context, _ *domain.CoWorker) error { return nil }

func (r *stubCoWorkerRepo) Delete(_ context.Context, _ string) error { return nil }

func (r *stubCoWorkerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.coworkers)), nil
}

func (r *stubCoWorkerRepo) CountCreatedBetween(_ context.Context, from, to time.Time) (int64, error) {
	var n int64
	for _, cw := range r.coworkers {
		if !cw.CreatedAt.Before(from) && cw.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func TestReportService_AdminReport(t *testing.T) {
	csrs := newStubCSRRepo()
	courses := newStubCourseRepo()
	students := &stubStudentRepo{}
	coworkers := &stubCoWorkerRepo{}

	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	csrs.byID["c1"] = &domain.Principal{ID: "c1", Kind: domain.KindCSR, IsActive: true, CreatedAt: now.AddDate(0, -1, 0)}
	csrs.byID["c2"] = &domain.Principal{ID: "c2", Kind: domain.KindCSR, IsActive: false, CreatedAt: now.AddDate(0, -1, 0)}
	students.students = []domain.Student{
		{ID: "s1", CreatedAt: now},
		{ID: "s2", CreatedAt: now.AddDate(0, -2, 0)},
		{ID: "s3", CreatedAt: now.AddDate(-2, 0, 0)}, // outside the window
	}
	coworkers.coworkers = []domain.CoWorker{{ID: "w1", CreatedAt: now}}

	svc := NewReportService(csrs, courses, students, coworkers, zerolog.Nop())
	svc.now = func() time.Time { return now }

	report, err := svc.AdminReport(context.Background())
	if err != nil {
		t.Fatalf("admin report: %v", err)
	}

	if report.TotalCSRs != 2 || report.ActiveCSRs != 1 {
		t.Fatalf("csr counts wrong: %+v", report)
	}
	if report.TotalStudents != 3 || report.TotalCoWorkers != 1 {
		t.Fatalf("totals wrong: %+v", report)
	}
	if len(report.Months) != 12 || len(report.MonthlyStudents) != 12 {
		t.Fatalf("expected 12 monthly buckets, got %d/%d", len(report.Months), len(report.MonthlyStudents))
	}
	if report.Months[11] != "Aug" || report.Months[0] != "Sep" {
		t.Fatalf("month labels misordered: %v", report.Months)
	}
	if report.MonthlyStudents[11] != 1 {
		t.Fatalf("current month should count one student, got %d", report.MonthlyStudents[11])
	}
	if report.MonthlyStudents[9] != 1 {
		t.Fatalf("two months back should count one student, got %d", report.MonthlyStudents[9])
	}
	if report.MonthlyCSRs[10] != 2 {
		t.Fatalf("last month should count two csrs, got %d", report.MonthlyCSRs[10])
	}

	var total int64
	for _, n := range report.MonthlyStudents {
		total += n
	}
	if total != 2 {
		t.Fatalf("student created two years ago leaked into the window")
	}
}

func TestReportService_Dashboards(t *testing.T) {
	csrs := newStubCSRRepo()
	courses := newStubCourseRepo()
	students := &stubStudentRepo{students: []domain.Student{{ID: "s1"}}}
	coworkers := &stubCoWorkerRepo{coworkers: []domain.CoWorker{{ID: "w1"}, {ID: "w2"}}}
	courses.courses["go-101"] = &domain.Course{ID: "go-101"}

	svc := NewReportService(csrs, courses, students, coworkers, zerolog.Nop())

	admin, err := svc.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("admin dashboard: %v", err)
	}
	if admin.TotalCourses != 1 || admin.TotalStudents != 1 || admin.TotalCoWorkers != 2 {
		t.Fatalf("unexpected admin dashboard: %+v", admin)
	}

	csr, err := svc.CSRDashboard(context.Background())
	if err != nil {
		t.Fatalf("csr dashboard: %v", err)
	}
	if csr.TotalStudents != 1 || csr.TotalCoWorkers != 2 {
		t.Fatalf("unexpected csr dashboard: %+v", csr)
	}
}
