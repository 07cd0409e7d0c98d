package limits

// Tracker accumulates usage blocks as they are parsed. Per namespace only the
// most recent block is kept: reported numbers are cumulative, so the last one
// supersedes everything before it.
type Tracker struct {
	order       []string // namespaces в порядке первого появления
	byNamespace map[string]Usage
	snapshots   []Snapshot
}

func NewTracker() *Tracker {
	return &Tracker{byNamespace: make(map[string]Usage)}
}

// Record stores one usage block for a namespace.
func (t *Tracker) Record(time int64, namespace string, u Usage) {
	if _, seen := t.byNamespace[namespace]; !seen {
		t.order = append(t.order, namespace)
	}
	t.byNamespace[namespace] = u
	t.snapshots = append(t.snapshots, Snapshot{Time: time, Namespace: namespace, Usage: u})
}

// Namespaces returns the recorded namespaces in order of first appearance.
func (t *Tracker) Namespaces() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// ByNamespace returns the latest usage recorded for a namespace.
func (t *Tracker) ByNamespace(namespace string) (Usage, bool) {
	u, ok := t.byNamespace[namespace]
	return u, ok
}

// Snapshots returns every recorded block in log order.
func (t *Tracker) Snapshots() []Snapshot {
	out := make([]Snapshot, len(t.snapshots))
	copy(out, t.snapshots)
	return out
}

// Merge folds all namespaces into one global summary: used amounts sum, while
// the limit is copied as-is since every namespace reports the same ceiling.
func (t *Tracker) Merge() Usage {
	var out Usage
	for _, ns := range t.order {
		u := t.byNamespace[ns]
		for i := range u {
			out[i].Used += u[i].Used
			if u[i].Limit != 0 {
				out[i].Limit = u[i].Limit
			}
		}
	}
	return out
}
