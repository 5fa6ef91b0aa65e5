package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldPage       = "page"
	FieldRole       = "role"
	FieldRow        = "row"
	FieldRowLength  = "row_length"
	FieldReason     = "reason"
	FieldCount      = "count"
	FieldSkipped    = "skipped"
	FieldPolicy     = "row_policy"
	FieldProfile    = "layout_profile"
	FieldCustomer   = "customer_code"
	FieldSequence   = "sequence"
	FieldQuantity   = "total_quantity"
	FieldDuration   = "duration_ms"
)
