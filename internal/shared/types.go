package shared

// Background task types and queues (asynq)
const (
	TypeDispatchOrderCall = "order:dispatch_call"

	QueueCalls   = "calls"
	QueueDefault = "default"
)
