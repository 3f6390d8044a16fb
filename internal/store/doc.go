// Package store defines the persistence contract shared by the relational
// and document backends, together with the sentinel errors that carry the
// service's closed set of failure outcomes.
//
// Every operation that touches a specific record takes the caller's bearer
// token and performs the authorization check inside the store, so that both
// backend variants expose identical externally observable behavior.
package store
