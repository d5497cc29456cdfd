// Package todoapi is a typed client for the to-do list REST API.
//
// Every operation runs the same pipeline: the caller's fields are validated
// against the operation's Schema, one HTTP request is sent through the
// Transport, and the raw response is normalized into an APIResult.
//
// Two kinds of outcome come back from an operation:
//   - an APIResult, for anything the server answered (2xx or an error with
//     a "detail" message);
//   - a Go error, for everything else: *ValidationError before any I/O,
//     *TransportError when the request could not complete, and
//     *MalformedErrorBodyError when an error response lacks "detail".
//
// Clients hold only read-only configuration and are safe for concurrent use.
package todoapi
