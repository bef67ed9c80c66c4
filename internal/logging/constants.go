package logging

// Standardized field names for structured logging.
const (
	FieldFile      = "file_path"
	FieldParser    = "parser"
	FieldVariant   = "variant"
	FieldLineIndex = "line_index"
	FieldZone      = "zone"
	FieldReason    = "reason"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldCount     = "count"
	FieldSkipped   = "skipped"
	FieldWorkers   = "workers"
	FieldOutput    = "output_file"
)
