// Package config loads and validates application configuration from
// TASKLIST_-prefixed environment variables, including the store driver
// selection that decides which persistence backend the process runs with.
package config
