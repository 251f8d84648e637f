package dto

// AdminDashboardResponse aggregates portal-wide statistics for administrators.
type AdminDashboardResponse struct {
	TotalStudents int               `json:"total_students"`
	Attendance    AttendanceSummary `json:"attendance"`
	Grades        GradeDistribution `json:"grades"`
	Admissions    AdmissionSummary  `json:"admissions"`
}

// AttendanceSummary captures session counts and overall attendance rate.
type AttendanceSummary struct {
	TotalSessions     int     `json:"total_sessions"`
	SubmittedSessions int     `json:"submitted_sessions"`
	OpenSessions      int     `json:"open_sessions"`
	TotalRecords      int     `json:"total_records"`
	PresentRecords    int     `json:"present_records"`
	AttendanceRate    float64 `json:"attendance_rate"`
}

// GradeDistribution counts results per letter grade.
type GradeDistribution struct {
	TotalResults int            `json:"total_results"`
	PassRate     float64        `json:"pass_rate"`
	ByGrade      map[string]int `json:"by_grade"`
}

// AdmissionSummary counts applicants by eligibility outcome.
type AdmissionSummary struct {
	TotalApplicants int `json:"total_applicants"`
	Eligible        int `json:"eligible"`
	NotEligible     int `json:"not_eligible"`
	Pending         int `json:"pending"`
}
