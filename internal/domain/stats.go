package domain

// DashboardStats — сводка для главного экрана консоли.
// Всегда выводится сканом текущих таблиц, никаких отдельных счетчиков.
type DashboardStats struct {
	TotalPolicies  int64 `json:"totalPolicies"`
	ActivePolicies int64 `json:"activePolicies"`
	TotalRuns      int64 `json:"totalRuns"`
	AllowedRuns    int64 `json:"allowedRuns"`
	DeniedRuns     int64 `json:"deniedRuns"`
	EscalatedRuns  int64 `json:"escalatedRuns"`
}
