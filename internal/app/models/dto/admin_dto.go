package dto

// DashboardStatsResponse represents the admin dashboard summary counts
type DashboardStatsResponse struct {
	Issues      IssueCountsResponse `json:"issues"`
	Cities      int64               `json:"cities"`
	Departments int64               `json:"departments"`
	AccessCodes int64               `json:"accessCodes"`
	Citizens    int64               `json:"citizens"`
	Staff       int64               `json:"staff"`
}
