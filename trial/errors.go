package trial

import "errors"

var (
	ErrorInputClosed          = errors.New("Operator input was closed")
	ErrorTransportUnreachable = errors.New("Command transport could not be invoked")
	ErrorInvalidField         = errors.New("Invalid field definition")
	ErrorFieldIndex           = errors.New("Field index out of range")
	ErrorUnknownField         = errors.New("Unknown field")
)
