// Package service contains the application's use cases. Services enforce
// team membership, run each mutation in a single transaction through
// store.Transactor, and emit change events only after the transaction
// commits.
//
// Services depend on store interfaces and never on a specific database.
package service
