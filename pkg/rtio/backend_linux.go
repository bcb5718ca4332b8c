package rtio

import (
	"src.rtio.sh/pkg/asio"
	"src.rtio.sh/pkg/asio/epoll"
)

var defaultFactory asio.Factory = epoll.Factory
