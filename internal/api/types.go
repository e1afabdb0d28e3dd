package api

// SystemInfo is the aggregate host snapshot served by GET /system-info.
type SystemInfo struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskPercent   float64 `json:"disk_percent"`
	ProcessCount  int     `json:"process_count"`
}

// ProcessEntry is one row of GET /processes. Memory is in megabytes.
type ProcessEntry struct {
	PID    int     `json:"pid"`
	Name   string  `json:"name"`
	Memory float64 `json:"memory"`
}

// KillRequest is the body of POST /kill-process.
type KillRequest struct {
	PID int `json:"pid"`
}
