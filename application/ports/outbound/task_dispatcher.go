package outbound

// TaskDispatcher abstracts the worker pool used to run background tasks.
type TaskDispatcher interface {
	Submit(task func()) error
}
