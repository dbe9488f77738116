package api

import (
	"context"
	"errors"
	"fmt"
)

// StatusError is a response the server produced and rejected: the request
// reached the other side, so it is not a connectivity problem.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// IsRejection reports whether err is any server-produced rejection (the
// request was delivered and answered).
func IsRejection(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// IsConnectivity reports whether err is a connectivity-class failure: no
// usable response, and not a deliberate cancellation. These are the failures
// that flip the client offline and feed the pending-operation queue.
func IsConnectivity(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return !IsRejection(err)
}
