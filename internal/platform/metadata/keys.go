package metadata

// --- SQLite Keys ---
// These keys are used for the 'key' column in the 'metadata' SQLite table.
const (
	// LastSnapshotRefreshKey stores the time (RFC3339) of the last successful
	// all-time leaderboard snapshot refresh.
	LastSnapshotRefreshKey = "last_snapshot_refresh"
)
