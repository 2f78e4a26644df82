// Package client talks to the gophtasks HTTP API on behalf of the CLI.
//
// HTTPClient covers login, the current-user lookup and task operations.
// Failures are mapped to sentinel errors that callers match with errors.Is:
// ErrUnavailable when the server cannot be reached, ErrUnauthorized and
// ErrTokenExpired for rejected tokens or credentials. Other API failures are
// returned as *APIError carrying the status code and the server's detail.
//
// TokenStore keeps the access token between invocations in a file readable
// only by its owner.
package client
