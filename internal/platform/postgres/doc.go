// Package postgres implements the store.Store contract on top of a
// PostgreSQL database accessed through database/sql with the pgx driver.
//
// Referential integrity between tasks and users is enforced by the schema:
// tasks.user_id carries a foreign key with ON DELETE CASCADE and
// ON UPDATE CASCADE, so user deletion and login renames propagate to tasks
// without store-level bookkeeping.
package postgres
