// Package diskspace guards job runs against a nearly full root filesystem. A
// failing disk tends to fill logs and hide the real failure, so the wrapper
// refuses to start jobs when any threshold is crossed.
package diskspace

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/disk"
)

// Thresholds below which a filesystem counts as low on space.
const (
	MinFreeBytes      uint64 = 5 << 30 // 5 GiB
	MinFreeRatio             = 0.05
	MinFreeInodes     uint64 = 5000
	MinFreeInodeRatio        = 0.05
)

// Message is the status written into a failure record when the guard trips.
const Message = "not enough disk space"

// Report is a snapshot of free space and free inodes on one filesystem.
type Report struct {
	Path        string
	Free        uint64 // bytes available to unprivileged users
	Total       uint64
	InodesFree  uint64
	InodesTotal uint64
}

// Check reads usage for the filesystem mounted at path.
func Check(path string) (Report, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read disk usage for %s: %w", path, err)
	}
	return FromUsage(usage), nil
}

// FromUsage converts a gopsutil usage stat into a Report.
func FromUsage(u *disk.UsageStat) Report {
	return Report{
		Path:        u.Path,
		Free:        u.Free,
		Total:       u.Total,
		InodesFree:  u.InodesFree,
		InodesTotal: u.InodesTotal,
	}
}

// Low reports whether any threshold is crossed.
func (r Report) Low() bool {
	return len(r.Reasons()) > 0
}

// Reasons lists every crossed threshold as a human-readable line.
// Filesystems that report zero total inodes (btrfs, some FUSE mounts) do not
// track inodes, so the inode checks are skipped for them.
func (r Report) Reasons() []string {
	var reasons []string

	if r.Free < MinFreeBytes {
		reasons = append(reasons, fmt.Sprintf("free space %s is below %s", humanize.IBytes(r.Free), humanize.IBytes(MinFreeBytes)))
	}
	if r.Total > 0 && ratio(r.Free, r.Total) < MinFreeRatio {
		reasons = append(reasons, fmt.Sprintf("free space is %.1f%% of %s", 100*ratio(r.Free, r.Total), humanize.IBytes(r.Total)))
	}
	if r.InodesTotal > 0 {
		if r.InodesFree < MinFreeInodes {
			reasons = append(reasons, fmt.Sprintf("free inodes %s are below %s", humanize.Comma(int64(r.InodesFree)), humanize.Comma(int64(MinFreeInodes))))
		}
		if ratio(r.InodesFree, r.InodesTotal) < MinFreeInodeRatio {
			reasons = append(reasons, fmt.Sprintf("free inodes are %.1f%% of %s", 100*ratio(r.InodesFree, r.InodesTotal), humanize.Comma(int64(r.InodesTotal))))
		}
	}
	return reasons
}

// Details renders the snapshot as record detail lines.
func (r Report) Details() []string {
	lines := []string{
		fmt.Sprintf("filesystem: %s", r.Path),
		fmt.Sprintf("free space: %s of %s", humanize.IBytes(r.Free), humanize.IBytes(r.Total)),
	}
	if r.InodesTotal > 0 {
		lines = append(lines, fmt.Sprintf("free inodes: %s of %s", humanize.Comma(int64(r.InodesFree)), humanize.Comma(int64(r.InodesTotal))))
	}
	for _, reason := range r.Reasons() {
		lines = append(lines, "reason: "+reason)
	}
	return lines
}

func ratio(part, whole uint64) float64 {
	return float64(part) / float64(whole)
}
