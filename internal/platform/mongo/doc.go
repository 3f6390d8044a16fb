// Package mongo implements the store.Store contract on top of MongoDB.
//
// Unlike the Postgres variant there is no database-enforced referential
// integrity between the two collections: the store itself deletes dependent
// tasks when a user is removed, verifies the owning user exists before
// inserting a task, and re-points task ownership when a login ID changes.
package mongo
