package service

import "fmt"

// panicError carries a recovered panic value as an error cause.
type panicError struct {
	value any
}

func (e panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}
