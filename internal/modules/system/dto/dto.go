package dto

type OverviewResponse struct {
	UserCount        int64              `json:"userCount"`
	NoteCount        int64              `json:"noteCount"`
	PostCount        int64              `json:"postCount"`
	NewFeedbackCount int64              `json:"newFeedbackCount"`
	SystemInfo       SystemInfoResponse `json:"systemInfo"`
}

type SystemInfoResponse struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
	Database     string `json:"database"`
	Uptime       string `json:"uptime"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
