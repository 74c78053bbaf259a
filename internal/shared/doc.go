// Package shared holds helpers used across nhlvis packages that belong to
// no single stage.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log output and fixture builders for player-season tables:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    table := testutil.SampleTable()
//	    ...
//	    testutil.AssertNoErrors(t, logs)
//	}
package shared
