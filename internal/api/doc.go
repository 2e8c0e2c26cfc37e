// Package api implements the HTTP surface of the task tracking system:
// request decoding and validation, handlers for the task and user routes,
// and the single translation point from service errors to HTTP status codes.
package api
