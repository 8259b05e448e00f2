package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies an API failure. Callers that do not differentiate treat
// any Problem as a generic failure of the operation.
type Kind string

const (
	KindBadData       Kind = "bad-data"
	KindUnauthorized  Kind = "unauthorized"
	KindForbidden     Kind = "forbidden"
	KindNotFound      Kind = "not-found"
	KindRejected      Kind = "rejected"
	KindUnknown       Kind = "unknown"
	KindBadRequest    Kind = "bad-request"
	KindTimeout       Kind = "timeout"
	KindCannotConnect Kind = "cannot-connect"
	KindServer        Kind = "server"
)

// Problem is the error returned by every Client method on a non-ok outcome.
type Problem struct {
	Kind Kind
	// Status is the HTTP status code, zero when no response was received
	Status int
}

func (p *Problem) Error() string {
	if p.Status != 0 {
		return fmt.Sprintf("api: %s (status %d)", p.Kind, p.Status)
	}
	return fmt.Sprintf("api: %s", p.Kind)
}

// problemFromStatus maps a non-2xx HTTP status to a Problem.
func problemFromStatus(status int) *Problem {
	var kind Kind
	switch {
	case status == http.StatusBadRequest:
		kind = KindBadRequest
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status == http.StatusForbidden:
		kind = KindForbidden
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status >= 400 && status < 500:
		kind = KindRejected
	case status >= 500:
		kind = KindServer
	default:
		kind = KindUnknown
	}

	return &Problem{Kind: kind, Status: status}
}

// problemFromTransport classifies a round-trip error that produced no
// response.
func problemFromTransport(err error) *Problem {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Problem{Kind: KindTimeout}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Problem{Kind: KindTimeout}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &Problem{Kind: KindCannotConnect}
	}

	return &Problem{Kind: KindUnknown}
}
