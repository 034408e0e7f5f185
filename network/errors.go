package network

import "errors"

// ErrMalformedCommand marks a frame that reached us but did not decode.
// The server ignores such commands without dropping the connection.
var ErrMalformedCommand = errors.New("malformed command")
