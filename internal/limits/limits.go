// Package limits models governor-limit usage reported by LIMIT_USAGE_FOR_NS
// blocks: a fixed set of named resources, per-namespace accounting, and the
// merge of all namespaces into one global summary.
package limits

// Resource identifies one governor limit tracked by the log.
type Resource uint8

const (
	SOQLQueries Resource = iota
	QueryRows
	SOSLQueries
	DMLStatements
	PublishImmediateDML
	DMLRows
	CPUTime
	HeapSize
	Callouts
	EmailInvocations
	FutureCalls
	QueueableJobs
	MobilePushCalls

	resourceCount
)

// resourceInfo binds each resource to the label used in log blocks and the
// shorter name used for rendering.
var resourceInfo = [resourceCount]struct {
	label   string // как в самом логе
	display string
}{
	SOQLQueries:         {"Number of SOQL queries", "SOQL queries"},
	QueryRows:           {"Number of query rows", "Query rows"},
	SOSLQueries:         {"Number of SOSL queries", "SOSL queries"},
	DMLStatements:       {"Number of DML statements", "DML statements"},
	PublishImmediateDML: {"Number of Publish Immediate DML", "Publish Immediate DML"},
	DMLRows:             {"Number of DML rows", "DML rows"},
	CPUTime:             {"Maximum CPU time", "CPU time (ms)"},
	HeapSize:            {"Maximum heap size", "Heap size (bytes)"},
	Callouts:            {"Number of callouts", "Callouts"},
	EmailInvocations:    {"Number of Email Invocations", "Email invocations"},
	FutureCalls:         {"Number of future calls", "Future calls"},
	QueueableJobs:       {"Number of queueable jobs added to the queue", "Queueable jobs"},
	MobilePushCalls:     {"Number of Mobile Apex push calls", "Mobile push calls"},
}

// String returns the display name of the resource.
func (r Resource) String() string {
	if r < resourceCount {
		return resourceInfo[r].display
	}
	return "unknown"
}

// Label returns the resource label exactly as it appears in log blocks.
func (r Resource) Label() string {
	if r < resourceCount {
		return resourceInfo[r].label
	}
	return ""
}

// Resources lists every tracked resource in declaration order.
func Resources() []Resource {
	out := make([]Resource, resourceCount)
	for i := range out {
		out[i] = Resource(i)
	}
	return out
}

// Value is one used/limit pair.
type Value struct {
	Used  int64
	Limit int64
}

// Usage holds a value for every tracked resource.
type Usage [resourceCount]Value

// Snapshot is one point-in-time usage block for a namespace.
type Snapshot struct {
	Time      int64
	Namespace string
	Usage     Usage
}
