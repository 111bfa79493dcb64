package types

import "time"

// Repair outcomes recorded per action.
const (
	RepairCreated = "created"  // missing table created from canonical DDL
	RepairCopied  = "copied"   // defective table rebuilt, rows carried forward
	RepairResumed = "resumed"  // interrupted rebuild finished on this open
	RepairReset   = "reset"    // defective table dropped and recreated empty
	RepairDropped = "dropped"  // phantom leftover table removed
	RepairSkipped = "skipped"  // defect detected but the fix failed; logged
)

// RepairAction records one structural defect found at store open and what
// was done about it.
type RepairAction struct {
	Table   string `json:"table"`
	Defect  string `json:"defect"`
	Outcome string `json:"outcome"`
	// Lossy marks repairs that discard rows by design (settings reset).
	Lossy  bool   `json:"lossy,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// RepairReport is the record of the one-time repair pass run at store open.
// Callers use it to detect degraded mode after a lossy or failed repair.
type RepairReport struct {
	OpenedAt time.Time      `json:"opened_at"`
	Actions  []RepairAction `json:"actions,omitempty"`
}

// Changed reports whether the pass made any structural change.
func (r *RepairReport) Changed() bool {
	for _, a := range r.Actions {
		if a.Outcome != RepairSkipped {
			return true
		}
	}
	return false
}

// Degraded reports whether a lossy repair occurred or a fix failed.
func (r *RepairReport) Degraded() bool {
	for _, a := range r.Actions {
		if a.Lossy || a.Outcome == RepairSkipped {
			return true
		}
	}
	return false
}
