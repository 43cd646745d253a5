package main

import (
	"fmt"
	"time"

	. "github.com/logrusorgru/aurora"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

type host struct {
	MemUsed  uint64 // MB
	MemUsage float64
	CPUUsage float64
}

func collectHost() (h host) {
	if v, err := mem.VirtualMemory(); err == nil {
		h.MemUsed = v.Used >> 20
		h.MemUsage = v.UsedPercent
	}
	if cc, err := cpu.Percent(0, false); err == nil && len(cc) > 0 {
		h.CPUUsage = cc[0]
	}
	return
}

func (r *result) throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Published) / r.Elapsed.Seconds()
}

// lines renders the result for the terminal.
func (r *result) lines(h host) []string {
	st := r.Channel
	return []string{
		fmt.Sprintf("channel %s capacity %d readers %d", Bold(st.Name), st.Capacity, st.Readers),
		fmt.Sprintf("published %d delivered %d in %s (%s msg/s)", Green(r.Published), Green(r.Delivered), r.Elapsed.Round(time.Millisecond), Cyan(fmt.Sprintf("%.0f", r.throughput()))),
		fmt.Sprintf("blocked %d rejected %d fallbacks %d max lag %d", Yellow(st.Blocked), Yellow(st.Rejected), Yellow(r.Fallbacks), st.MaxLag),
		fmt.Sprintf("host memory %dMB (%.1f%%) cpu %.1f%%", h.MemUsed, h.MemUsage, h.CPUUsage),
	}
}
