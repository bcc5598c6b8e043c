// Package shared holds helpers used by more than one internal package.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// structured logs and raw users, matches and chats fixtures that exercise
// the cleaning rules end to end:
//
//	func TestClean(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    raw := testutil.RawDataset(t)
//	    ...
//	    testutil.AssertLogContains(t, logs, slog.LevelWarn, "Data quality issue")
//	}
//
// Nothing here may import business packages beyond dataprocessing, so that
// any stage can use the fixtures in its tests.
package shared
