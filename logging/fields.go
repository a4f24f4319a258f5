package logging

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldBackend   = "backend"
	FieldPath      = "path"
	FieldName      = "employee"
	FieldFromDate  = "from_date"
	FieldToDate    = "to_date"
	FieldFilter    = "filter"
	FieldCount     = "count"
	FieldSkipped   = "skipped"
	FieldLine      = "line"
	FieldReason    = "reason"
	FieldStatus    = "status"
	FieldAddr      = "addr"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentHTTP    = "http"
	ComponentNotify  = "notify"
	ComponentExport  = "export"
	ComponentSession = "session"
)

// Operations defines standard operation names
const (
	OpAppend   = "append"
	OpScan     = "scan"
	OpReport   = "report"
	OpExport   = "export"
	OpPublish  = "publish"
	OpMigrate  = "migrate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
