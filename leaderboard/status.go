package leaderboard

import (
	"context"
	"errors"
)

//go:generate go tool stringer -type=Status -trimprefix=Status

// Status classifies the outcome of a leaderboard request.
type Status int

const (
	StatusOK Status = iota
	// StatusNoNetwork covers transport failures and timeouts.
	StatusNoNetwork
	// StatusNotFound is an HTTP 404.
	StatusNotFound
	// StatusServerError covers other HTTP failures, "ok": false and
	// malformed payloads.
	StatusServerError
)

var (
	ErrNoNetwork = errors.New("leaderboard unreachable")
	ErrNotFound  = errors.New("leaderboard endpoint not found")
	ErrServer    = errors.New("leaderboard server error")
)

// StatusOf maps an error returned by Client to its Status.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrNotFound):
		return StatusNotFound
	case errors.Is(err, ErrServer):
		return StatusServerError
	case errors.Is(err, ErrNoNetwork), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return StatusNoNetwork
	}
	return StatusServerError
}
