package transport

import "errors"

var (
	ErrorRequestTooLarge = errors.New("Request does not fit in a single transfer")
	ErrorBadFrame        = errors.New("Received invalid frame")
)
