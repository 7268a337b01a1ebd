// Package domain defines the core entities of the task board: users, teams,
// tasks, comments, and notifications, along with their validation rules and
// the errors those rules produce. It has no knowledge of storage or transport.
package domain
