// Package snapshot names backup directories and copies the save directory
// into them.
package snapshot

import "time"

// Marker separates the source directory name from the timestamp in every
// snapshot name. Retention recognizes snapshots by MarkerFor, so changing
// either breaks pruning of snapshots made by earlier runs.
const Marker = "_backup_"

// TimeLayout renders HH_mm_ss-dd_MM_yy.
const TimeLayout = "15_04_05-02_01_06"

// Name returns the directory name of a snapshot of base taken at t, in local time.
func Name(base string, t time.Time) string {
	return base + Marker + t.Local().Format(TimeLayout)
}

// MarkerFor is the substring every snapshot of base contains, e.g.
// "quicksave_backup_". Matching is by substring, so snapshots of a sibling
// directory whose name ends in base ("myquicksave_backup_...") also match
// and share the same retention count.
func MarkerFor(base string) string {
	return base + Marker
}
