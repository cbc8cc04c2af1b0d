package models

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned (wrapped) by every calculator and tracker
// operation whose preconditions are not met. Match it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgument returns an error wrapping ErrInvalidArgument with msg.
func InvalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}
