package registry

import "errors"

var (
	ErrorEmptyMenu        = errors.New("Menu has no entries")
	ErrorInvalidItem      = errors.New("Menu entry must hold exactly one of menu or command")
	ErrorInvalidCommand   = errors.New("Invalid command definition")
	ErrorDuplicateCommand = errors.New("Duplicate command id")
)
