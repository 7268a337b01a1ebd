// Package testdb provides utilities for database integration tests.
//
// Each test runs inside its own transaction that is rolled back when the test
// completes, so tests can run in parallel against one migrated database
// without cleanup:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        userID := testdb.InsertUser(t, tx, "alice", nil)
//	        ...
//	    })
//	}
//
// Tests are skipped when DATABASE_URL is not set.
package testdb
