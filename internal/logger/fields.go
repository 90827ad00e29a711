package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Standard tracing fields, propagated through the call chain via context.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldOrgID is the tenant organization ID
	FieldOrgID = "org_id"

	// FieldUserID is the acting user ID
	FieldUserID = "user_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldTable is the storage table an operation targets
	FieldTable = "table"
)

// Standard metric fields, attached at the log site for aggregation.
const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldStatus is the operation or HTTP status
	FieldStatus = "status"

	// FieldAction is the audit action (CREATE, UPDATE, DELETE)
	FieldAction = "action"

	// FieldEntityID is the record ID an operation targets
	FieldEntityID = "entity_id"
)
