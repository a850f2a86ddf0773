package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across packages, making logs
// easier to parse, filter, and analyze.
const (
	FieldInstitution   = "institution"
	FieldAccount       = "account_id"
	FieldTransactionID = "transaction_id"
	FieldRule          = "rule_id"
	FieldCategory      = "category"
	FieldConfidence    = "confidence"
	FieldCount         = "count"
	FieldFile          = "file_path"
	FieldReason        = "reason"
	FieldDuration      = "duration_ms"
)
