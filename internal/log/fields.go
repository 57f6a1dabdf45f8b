package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldID          = "id"
	FieldDate        = "date"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldLimitCents  = "limit_cents"
	FieldLine        = "line"
	FieldImported    = "imported"
	FieldFailed      = "failed"
	FieldSheet       = "sheet"
	FieldRows        = "rows"
)

// Components defines standard component names.
const (
	ComponentApp = "app"
	ComponentCLI = "cli"
)
