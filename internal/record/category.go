package record

// Category groups record kinds for rendering and export. It never influences
// tree building.
type Category uint8

const (
	// CategoryOther is the fallback for kinds without a better group.
	CategoryOther Category = iota
	// CategorySystem covers execution and code-unit framing records.
	CategorySystem
	// CategoryMethod covers method and constructor entry/exit pairs.
	CategoryMethod
	// CategorySOQL covers query records.
	CategorySOQL
	// CategorySOSL covers search records.
	CategorySOSL
	// CategoryDML covers data-manipulation records.
	CategoryDML
	// CategoryException covers thrown exceptions and fatal errors.
	CategoryException
	// CategoryDebug covers user-emitted debug output.
	CategoryDebug
	// CategoryFlow covers flow interview and element records.
	CategoryFlow
	// CategoryWorkflow covers workflow rule and action records.
	CategoryWorkflow
	// CategoryLimit covers governor-limit usage records.
	CategoryLimit
	// CategoryCallout covers external callouts and named credentials.
	CategoryCallout
	// CategoryPackage covers managed-package execution records.
	CategoryPackage
	// CategoryVariable covers variable scope/assignment records.
	CategoryVariable
)

var categoryNames = map[Category]string{
	CategoryOther:     "other",
	CategorySystem:    "system",
	CategoryMethod:    "method",
	CategorySOQL:      "soql",
	CategorySOSL:      "sosl",
	CategoryDML:       "dml",
	CategoryException: "exception",
	CategoryDebug:     "debug",
	CategoryFlow:      "flow",
	CategoryWorkflow:  "workflow",
	CategoryLimit:     "limit",
	CategoryCallout:   "callout",
	CategoryPackage:   "package",
	CategoryVariable:  "variable",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "other"
}

// KnownCategory reports whether name matches a category, for flag validation.
func KnownCategory(name string) bool {
	for _, s := range categoryNames {
		if s == name {
			return true
		}
	}
	return false
}
