//go:build !linux

package rtio

import (
	"errors"

	"src.rtio.sh/pkg/asio"
)

var errNoBackend = errors.New("no readiness notification backend on this platform")

var defaultFactory asio.Factory = func() (asio.Backend, error) { return nil, errNoBackend }
