//go:build !unix

package listener

import (
	"context"
	"net"
	"strconv"
)

func listen(options Options) (net.Listener, error) {
	var lc net.ListenConfig
	return lc.Listen(context.Background(), "tcp4", net.JoinHostPort("0.0.0.0", strconv.Itoa(options.Port)))
}
