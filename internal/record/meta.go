package record

// Meta is the structural description of one record kind. Strict exit types
// and ClosesOnNextLine are mutually exclusive: a kind is closed either by a
// specific record or by whatever line comes next, never both ways.
type Meta struct {
	// ExitTypes lists the record kinds that legitimately close this one.
	ExitTypes []string
	// ClosesOnNextLine marks kinds whose exit is implicit.
	ClosesOnNextLine bool
	// IsExitCandidate marks kinds that can serve as someone's exit.
	IsExitCandidate bool
	// SignalsDiscontinuity marks abnormal control flow (exceptions, errors).
	SignalsDiscontinuity bool
	// AcceptsText marks kinds whose payload continues on following lines.
	AcceptsText bool
	// HasLineRef marks kinds that carry a [n] / [EXTERNAL] source reference.
	HasLineRef bool
	// IsPackagedCode marks managed-package records, the coalescing targets.
	IsPackagedCode bool
	// DeclaresNamespace marks kinds whose fields name their own namespace.
	DeclaresNamespace bool

	Category Category
}

// IsParent reports whether the kind opens a scope.
func (m Meta) IsParent() bool {
	return len(m.ExitTypes) > 0 || m.ClosesOnNextLine
}

func exits(names ...string) []string { return names }

// registry is the static record-kind table. Keys are field 1 of a log line.
var registry = map[string]Meta{
	// Execution framing.
	"EXECUTION_STARTED":  {ExitTypes: exits("EXECUTION_FINISHED"), Category: CategorySystem},
	"EXECUTION_FINISHED": {IsExitCandidate: true, Category: CategorySystem},
	"CODE_UNIT_STARTED":  {ExitTypes: exits("CODE_UNIT_FINISHED"), HasLineRef: true, Category: CategorySystem},
	"CODE_UNIT_FINISHED": {IsExitCandidate: true, HasLineRef: true, Category: CategorySystem},

	// Methods and constructors.
	"METHOD_ENTRY":             {ExitTypes: exits("METHOD_EXIT"), HasLineRef: true, Category: CategoryMethod},
	"METHOD_EXIT":              {IsExitCandidate: true, HasLineRef: true, Category: CategoryMethod},
	"SYSTEM_METHOD_ENTRY":      {ExitTypes: exits("SYSTEM_METHOD_EXIT"), HasLineRef: true, Category: CategoryMethod},
	"SYSTEM_METHOD_EXIT":       {IsExitCandidate: true, HasLineRef: true, Category: CategoryMethod},
	"CONSTRUCTOR_ENTRY":        {ExitTypes: exits("CONSTRUCTOR_EXIT"), HasLineRef: true, Category: CategoryMethod},
	"CONSTRUCTOR_EXIT":         {IsExitCandidate: true, HasLineRef: true, Category: CategoryMethod},
	"SYSTEM_CONSTRUCTOR_ENTRY": {ExitTypes: exits("SYSTEM_CONSTRUCTOR_EXIT"), HasLineRef: true, Category: CategoryMethod},
	"SYSTEM_CONSTRUCTOR_EXIT":  {IsExitCandidate: true, HasLineRef: true, Category: CategoryMethod},
	"SYSTEM_MODE_ENTER":        {Category: CategorySystem},
	"SYSTEM_MODE_EXIT":         {Category: CategorySystem},
	"STATEMENT_EXECUTE":        {HasLineRef: true, Category: CategorySystem},
	"HEAP_ALLOCATE":            {HasLineRef: true, Category: CategorySystem},
	"HEAP_DEALLOCATE":          {HasLineRef: true, Category: CategorySystem},
	"SAVEPOINT_SET":            {HasLineRef: true, Category: CategorySystem},
	"SAVEPOINT_ROLLBACK":       {HasLineRef: true, Category: CategorySystem},

	// Queries and DML.
	"SOQL_EXECUTE_BEGIN":    {ExitTypes: exits("SOQL_EXECUTE_END"), HasLineRef: true, Category: CategorySOQL},
	"SOQL_EXECUTE_END":      {IsExitCandidate: true, HasLineRef: true, Category: CategorySOQL},
	"SOQL_EXECUTE_EXPLAIN":  {HasLineRef: true, Category: CategorySOQL},
	"QUERY_MORE_BEGIN":      {ExitTypes: exits("QUERY_MORE_END"), HasLineRef: true, Category: CategorySOQL},
	"QUERY_MORE_END":        {IsExitCandidate: true, HasLineRef: true, Category: CategorySOQL},
	"QUERY_MORE_ITERATIONS": {HasLineRef: true, Category: CategorySOQL},
	"SOSL_EXECUTE_BEGIN":    {ExitTypes: exits("SOSL_EXECUTE_END"), HasLineRef: true, Category: CategorySOSL},
	"SOSL_EXECUTE_END":      {IsExitCandidate: true, HasLineRef: true, Category: CategorySOSL},
	"DML_BEGIN":             {ExitTypes: exits("DML_END"), HasLineRef: true, Category: CategoryDML},
	"DML_END":               {IsExitCandidate: true, HasLineRef: true, Category: CategoryDML},
	"IDEAS_QUERY_EXECUTE":   {HasLineRef: true, Category: CategorySOQL},

	// Exceptions.
	"EXCEPTION_THROWN": {SignalsDiscontinuity: true, AcceptsText: true, HasLineRef: true, Category: CategoryException},
	"FATAL_ERROR":      {SignalsDiscontinuity: true, AcceptsText: true, Category: CategoryException},

	// Managed packages.
	"ENTERING_MANAGED_PKG": {ClosesOnNextLine: true, IsPackagedCode: true, DeclaresNamespace: true, Category: CategoryPackage},

	// Governor limits.
	"CUMULATIVE_LIMIT_USAGE":     {ExitTypes: exits("CUMULATIVE_LIMIT_USAGE_END"), Category: CategoryLimit},
	"CUMULATIVE_LIMIT_USAGE_END": {IsExitCandidate: true, Category: CategoryLimit},
	"LIMIT_USAGE_FOR_NS":         {AcceptsText: true, DeclaresNamespace: true, Category: CategoryLimit},
	"LIMIT_USAGE":                {HasLineRef: true, Category: CategoryLimit},
	"TESTING_LIMITS":             {Category: CategoryLimit},
	"CUMULATIVE_PROFILING_BEGIN": {ExitTypes: exits("CUMULATIVE_PROFILING_END"), Category: CategoryLimit},
	"CUMULATIVE_PROFILING_END":   {IsExitCandidate: true, Category: CategoryLimit},
	"CUMULATIVE_PROFILING":       {AcceptsText: true, Category: CategoryLimit},

	// Debug output.
	"USER_DEBUG":           {AcceptsText: true, HasLineRef: true, Category: CategoryDebug},
	"USER_INFO":            {Category: CategoryDebug},
	"STATIC_VARIABLE_LIST": {AcceptsText: true, Category: CategoryDebug},
	"PUSH_TRACE_FLAGS":     {Category: CategoryDebug},
	"POP_TRACE_FLAGS":      {Category: CategoryDebug},

	// Variables.
	"VARIABLE_SCOPE_BEGIN": {HasLineRef: true, Category: CategoryVariable},
	"VARIABLE_SCOPE_END":   {Category: CategoryVariable},
	"VARIABLE_ASSIGNMENT":  {AcceptsText: true, HasLineRef: true, Category: CategoryVariable},

	// Callouts.
	"CALLOUT_REQUEST":                  {AcceptsText: true, HasLineRef: true, Category: CategoryCallout},
	"CALLOUT_RESPONSE":                 {AcceptsText: true, HasLineRef: true, Category: CategoryCallout},
	"NAMED_CREDENTIAL_REQUEST":         {Category: CategoryCallout},
	"NAMED_CREDENTIAL_RESPONSE":        {Category: CategoryCallout},
	"NAMED_CREDENTIAL_RESPONSE_DETAIL": {Category: CategoryCallout},

	// Flows.
	"FLOW_START_INTERVIEWS_BEGIN":    {ExitTypes: exits("FLOW_START_INTERVIEWS_END"), Category: CategoryFlow},
	"FLOW_START_INTERVIEWS_END":      {IsExitCandidate: true, Category: CategoryFlow},
	"FLOW_START_INTERVIEW_BEGIN":     {ExitTypes: exits("FLOW_START_INTERVIEW_END"), Category: CategoryFlow},
	"FLOW_START_INTERVIEW_END":       {IsExitCandidate: true, Category: CategoryFlow},
	"FLOW_CREATE_INTERVIEW_BEGIN":    {ExitTypes: exits("FLOW_CREATE_INTERVIEW_END"), Category: CategoryFlow},
	"FLOW_CREATE_INTERVIEW_END":      {IsExitCandidate: true, Category: CategoryFlow},
	"FLOW_ELEMENT_BEGIN":             {ExitTypes: exits("FLOW_ELEMENT_END"), Category: CategoryFlow},
	"FLOW_ELEMENT_END":               {IsExitCandidate: true, Category: CategoryFlow},
	"FLOW_BULK_ELEMENT_BEGIN":        {ExitTypes: exits("FLOW_BULK_ELEMENT_END"), Category: CategoryFlow},
	"FLOW_BULK_ELEMENT_END":          {IsExitCandidate: true, Category: CategoryFlow},
	"FLOW_ELEMENT_ERROR":             {SignalsDiscontinuity: true, AcceptsText: true, Category: CategoryFlow},
	"FLOW_ELEMENT_DEFERRED":          {Category: CategoryFlow},
	"FLOW_VALUE_ASSIGNMENT":          {Category: CategoryFlow},
	"FLOW_INTERVIEW_FINISHED":        {Category: CategoryFlow},
	"FLOW_INTERVIEW_PAUSED":          {Category: CategoryFlow},
	"FLOW_BULK_ELEMENT_DETAIL":       {Category: CategoryFlow},
	"FLOW_BULK_ELEMENT_NOT_EXECUTED": {Category: CategoryFlow},
	"FLOW_ACTIONCALL_DETAIL":         {Category: CategoryFlow},

	// Workflow.
	"WF_RULE_EVAL_BEGIN":    {ExitTypes: exits("WF_RULE_EVAL_END"), Category: CategoryWorkflow},
	"WF_RULE_EVAL_END":      {IsExitCandidate: true, Category: CategoryWorkflow},
	"WF_CRITERIA_BEGIN":     {ExitTypes: exits("WF_CRITERIA_END", "WF_SPOOL_ACTION_BEGIN"), Category: CategoryWorkflow},
	"WF_CRITERIA_END":       {IsExitCandidate: true, Category: CategoryWorkflow},
	"WF_SPOOL_ACTION_BEGIN": {IsExitCandidate: true, Category: CategoryWorkflow},
	"WF_FLOW_ACTION_BEGIN":  {ExitTypes: exits("WF_FLOW_ACTION_END"), Category: CategoryWorkflow},
	"WF_FLOW_ACTION_END":    {IsExitCandidate: true, Category: CategoryWorkflow},
	"WF_RULE_FILTER":        {AcceptsText: true, Category: CategoryWorkflow},
	"WF_RULE_NOT_EVALUATED": {Category: CategoryWorkflow},
	"WF_FIELD_UPDATE":       {Category: CategoryWorkflow},
	"WF_ACTION":             {Category: CategoryWorkflow},
	"WF_EMAIL_SENT":         {Category: CategoryWorkflow},

	// Validation rules.
	"VALIDATION_RULE":    {Category: CategoryWorkflow},
	"VALIDATION_FORMULA": {AcceptsText: true, Category: CategoryWorkflow},
	"VALIDATION_PASS":    {Category: CategoryWorkflow},
	"VALIDATION_FAIL":    {Category: CategoryWorkflow},

	// Platform events.
	"EVENT_SERVICE_PUB_BEGIN":  {ExitTypes: exits("EVENT_SERVICE_PUB_END"), Category: CategorySystem},
	"EVENT_SERVICE_PUB_END":    {IsExitCandidate: true, Category: CategorySystem},
	"EVENT_SERVICE_PUB_DETAIL": {Category: CategorySystem},
	"EVENT_SERVICE_SUB_BEGIN":  {ExitTypes: exits("EVENT_SERVICE_SUB_END"), Category: CategorySystem},
	"EVENT_SERVICE_SUB_END":    {IsExitCandidate: true, Category: CategorySystem},
	"EVENT_SERVICE_SUB_DETAIL": {Category: CategorySystem},

	// Duplicate detection.
	"DUPLICATE_DETECTION_BEGIN":           {ExitTypes: exits("DUPLICATE_DETECTION_END"), Category: CategorySystem},
	"DUPLICATE_DETECTION_END":             {IsExitCandidate: true, Category: CategorySystem},
	"DUPLICATE_DETECTION_RULE_INVOCATION": {Category: CategorySystem},
	"MATCH_ENGINE_BEGIN":                  {ExitTypes: exits("MATCH_ENGINE_END"), Category: CategorySystem},
	"MATCH_ENGINE_END":                    {IsExitCandidate: true, Category: CategorySystem},

	// Platform cache.
	"ORG_CACHE_GET_BEGIN":     {ExitTypes: exits("ORG_CACHE_GET_END"), Category: CategorySystem},
	"ORG_CACHE_GET_END":       {IsExitCandidate: true, Category: CategorySystem},
	"ORG_CACHE_PUT_BEGIN":     {ExitTypes: exits("ORG_CACHE_PUT_END"), Category: CategorySystem},
	"ORG_CACHE_PUT_END":       {IsExitCandidate: true, Category: CategorySystem},
	"SESSION_CACHE_GET_BEGIN": {ExitTypes: exits("SESSION_CACHE_GET_END"), Category: CategorySystem},
	"SESSION_CACHE_GET_END":   {IsExitCandidate: true, Category: CategorySystem},
	"SESSION_CACHE_PUT_BEGIN": {ExitTypes: exits("SESSION_CACHE_PUT_END"), Category: CategorySystem},
	"SESSION_CACHE_PUT_END":   {IsExitCandidate: true, Category: CategorySystem},

	// Visualforce.
	"VF_APEX_CALL_START":             {ExitTypes: exits("VF_APEX_CALL_END"), HasLineRef: true, Category: CategorySystem},
	"VF_APEX_CALL_END":               {IsExitCandidate: true, HasLineRef: true, Category: CategorySystem},
	"VF_DESERIALIZE_VIEWSTATE_BEGIN": {ExitTypes: exits("VF_DESERIALIZE_VIEWSTATE_END"), Category: CategorySystem},
	"VF_DESERIALIZE_VIEWSTATE_END":   {IsExitCandidate: true, Category: CategorySystem},
	"VF_SERIALIZE_VIEWSTATE_BEGIN":   {ExitTypes: exits("VF_SERIALIZE_VIEWSTATE_END"), Category: CategorySystem},
	"VF_SERIALIZE_VIEWSTATE_END":     {IsExitCandidate: true, Category: CategorySystem},
	"VF_EVALUATE_FORMULA_BEGIN":      {ExitTypes: exits("VF_EVALUATE_FORMULA_END"), Category: CategorySystem},
	"VF_EVALUATE_FORMULA_END":        {IsExitCandidate: true, Category: CategorySystem},
	"VF_PAGE_MESSAGE":                {AcceptsText: true, Category: CategorySystem},

	// Email.
	"TOTAL_EMAIL_RECIPIENTS_QUEUED": {Category: CategorySystem},
}

// Describe returns the structural metadata for a record type.
func Describe(typeName string) (Meta, bool) {
	m, ok := registry[typeName]
	return m, ok
}

// Known reports whether the type name is in the registry.
func Known(typeName string) bool {
	_, ok := registry[typeName]
	return ok
}

// Kinds returns every registered type name, unordered.
func Kinds() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	return out
}
