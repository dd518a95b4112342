package ports

import "context"

// AdminReport aggregates the counts behind the admin reports page. The
// monthly slices cover the trailing twelve months, oldest first, and
// line up index-for-index with Months.
type AdminReport struct {
	TotalCSRs        int64   `json:"totalCSRs"`
	ActiveCSRs       int64   `json:"activeCSRs"`
	TotalCoWorkers   int64   `json:"totalCoWorkers"`
	TotalStudents    int64   `json:"totalStudents"`
	Months           []string `json:"months"`
	MonthlyCSRs      []int64 `json:"monthlyCSRs"`
	MonthlyCoWorkers []int64 `json:"monthlyCoWorkers"`
	MonthlyStudents  []int64 `json:"monthlyStudents"`
}

type AdminDashboard struct {
	TotalCSRs      int64 `json:"totalCSRs"`
	ActiveCSRs     int64 `json:"activeCSRs"`
	TotalCourses   int64 `json:"totalCourses"`
	TotalStudents  int64 `json:"totalStudents"`
	TotalCoWorkers int64 `json:"totalCoWorkers"`
}

type CSRDashboard struct {
	TotalStudents  int64 `json:"totalStudents"`
	TotalCoWorkers int64 `json:"totalCoWorkers"`
}

type ReportService interface {
	AdminReport(ctx context.Context) (*AdminReport, error)
	AdminDashboard(ctx context.Context) (*AdminDashboard, error)
	CSRDashboard(ctx context.Context) (*CSRDashboard, error)
}
