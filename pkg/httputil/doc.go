// Package httputil provides HTTP helpers for the stitchrow API server.
//
// # Overview
//
// This package holds the pieces every handler needs:
//
//   - [WriteJSON] and [WriteError]: JSON responses
//   - [StatusFor]: mapping of error codes to HTTP status
//   - [RequestID]: middleware assigning each request an ID
//
// # Errors
//
// Handlers return structured errors from pkg/errors. [WriteError] turns them
// into a JSON body with the error code, a user-facing message and the request
// ID:
//
//	{"code": "OUT_OF_RANGE", "message": "row 9 is out of bounds (1-8)", "request_id": "..."}
//
// Errors without a code are reported as INTERNAL_ERROR and their message is
// not exposed to the caller.
//
// # Request IDs
//
// [RequestID] reuses an incoming X-Request-ID header when it looks sane and
// otherwise generates a random UUID. The ID is echoed in the response header
// and available to handlers through [RequestIDFromContext].
package httputil
