package toolkit

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// SystemMetricsTool handles the dev_system_metrics MCP tool.
type SystemMetricsTool struct{}

// NewSystemMetricsTool creates a SystemMetricsTool.
func NewSystemMetricsTool() *SystemMetricsTool {
	return &SystemMetricsTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *SystemMetricsTool) Definition() mcp.Tool {
	return mcp.NewTool("dev_system_metrics",
		mcp.WithDescription(
			"Get system performance metrics: CPU usage, memory, disk, and host info. "+
				"Returns JSON.",
		),
	)
}

type systemMetrics struct {
	Timestamp string `json:"timestamp"`
	CPU       struct {
		UsagePercent float64 `json:"usage_percent"`
		Count        int     `json:"count"`
	} `json:"cpu"`
	Memory struct {
		TotalBytes     uint64  `json:"total_bytes"`
		AvailableBytes uint64  `json:"available_bytes"`
		UsedPercent    float64 `json:"used_percent"`
	} `json:"memory"`
	Disk struct {
		Path        string  `json:"path"`
		TotalBytes  uint64  `json:"total_bytes"`
		FreeBytes   uint64  `json:"free_bytes"`
		UsedPercent float64 `json:"used_percent"`
	} `json:"disk"`
	Host struct {
		Hostname      string `json:"hostname"`
		OS            string `json:"os"`
		Platform      string `json:"platform"`
		UptimeSeconds uint64 `json:"uptime_seconds"`
	} `json:"host"`
}

// Handle processes the dev_system_metrics tool call. Individual probes that
// fail are left at their zero values rather than failing the whole call.
func (t *SystemMetricsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metrics := systemMetrics{Timestamp: time.Now().Format(time.RFC3339)}

	// One-second sample window, same as psutil's interval=1 convention.
	if percents, err := cpu.PercentWithContext(ctx, time.Second, false); err == nil && len(percents) > 0 {
		metrics.CPU.UsagePercent = percents[0]
	}
	if count, err := cpu.CountsWithContext(ctx, true); err == nil {
		metrics.CPU.Count = count
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		metrics.Memory.TotalBytes = vm.Total
		metrics.Memory.AvailableBytes = vm.Available
		metrics.Memory.UsedPercent = vm.UsedPercent
	}

	if usage, err := disk.UsageWithContext(ctx, "/"); err == nil {
		metrics.Disk.Path = usage.Path
		metrics.Disk.TotalBytes = usage.Total
		metrics.Disk.FreeBytes = usage.Free
		metrics.Disk.UsedPercent = usage.UsedPercent
	}

	if info, err := host.InfoWithContext(ctx); err == nil {
		metrics.Host.Hostname = info.Hostname
		metrics.Host.OS = info.OS
		metrics.Host.Platform = info.Platform
		metrics.Host.UptimeSeconds = info.Uptime
	}

	return jsonResult(metrics)
}
