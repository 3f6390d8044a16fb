// Package api contains the HTTP handlers for the task-list service.
//
// Handlers hold no business logic: they extract the bearer token and request
// payload, call one store method, and translate the result into a JSON body.
// Every contract outcome from the store is serialized as {"error": "<string>"}
// with HTTP 200; only transport-level problems (malformed bodies, internal
// faults) use non-200 status codes.
package api
