package models

// ============================================================================
// DEFAULTS
// ============================================================================

// Values applied when a create request leaves the field out
const (
	DefaultProjectColor  = "bg-warning"
	DefaultCategory      = "DESIGN"
	DefaultCategoryColor = "badge-info"
	DefaultBorderColor   = "border-amber-300"
)
