package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// sysInfoInterval is how often the system stats are refreshed. Sampling
// faster than this is wasted work for a status pane.
const sysInfoInterval = 500 * time.Millisecond

// SysStats holds the latest system statistics shared by every sysinfo pane.
type SysStats struct {
	CPUPercent  float64
	CPUHistory  []float64
	MemPercent  float64
	MemUsed     uint64
	MemTotal    uint64
	Load1       float64
	Load5       float64
	Load15      float64
	Uptime      time.Duration
	lastRefresh time.Time
}

// Refresh re-samples the system, at most once per sysInfoInterval.
func (s *SysStats) Refresh() {
	now := time.Now()
	if now.Sub(s.lastRefresh) < sysInfoInterval {
		return
	}
	s.lastRefresh = now

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		s.CPUPercent = percents[0]
		if len(s.CPUHistory) >= 10 {
			s.CPUHistory = s.CPUHistory[1:]
		}
		s.CPUHistory = append(s.CPUHistory, s.CPUPercent)
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		s.MemPercent = vm.UsedPercent
		s.MemUsed = vm.Used
		s.MemTotal = vm.Total
	}

	if avg, err := load.Avg(); err == nil {
		s.Load1 = avg.Load1
		s.Load5 = avg.Load5
		s.Load15 = avg.Load15
	}

	if up, err := host.Uptime(); err == nil {
		s.Uptime = time.Duration(up) * time.Second
	}
}

// CPUGraph returns a fixed-width spark graph of the recent CPU history.
// Always 10 characters wide to prevent layout shifts.
func (s *SysStats) CPUGraph() string {
	bars := []rune("▁▂▃▄▅▆▇█")
	var b strings.Builder

	if pad := 10 - len(s.CPUHistory); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	for i, usage := range s.CPUHistory {
		if i >= 10 {
			break
		}
		height := min(int(usage/12.5), 7)
		b.WriteRune(bars[height])
	}
	return b.String()
}

// Lines renders the stats as display rows for a sysinfo pane.
func (s *SysStats) Lines() []string {
	return []string{
		fmt.Sprintf("CPU  %s %5.1f%%", s.CPUGraph(), s.CPUPercent),
		fmt.Sprintf("MEM  %5.1f%%  %s / %s", s.MemPercent, formatBytes(s.MemUsed), formatBytes(s.MemTotal)),
		fmt.Sprintf("LOAD %.2f %.2f %.2f", s.Load1, s.Load5, s.Load15),
		fmt.Sprintf("UP   %s", formatUptime(s.Uptime)),
	}
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGTPE"[exp])
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
