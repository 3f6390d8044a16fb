// Package domain defines the core entities of the task-list service:
// users and the tasks they own. Entities carry no persistence or
// authorization logic; that lives in the store implementations.
package domain
