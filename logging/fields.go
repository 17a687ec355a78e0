package logging

const (
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	FieldUserID    = "user_id"
	FieldRole      = "role"
	FieldSessionID = "session_id"
	FieldRoomID    = "room_id"
	FieldBookingID = "booking_id"

	FieldService = "service"

	FieldLogType = "log_type"
	LogTypeAudit = "audit"
	FieldAction  = "action"
)
