package ttlmemo

// Stats counts how calls were served. Expirations are recomputations of a
// stale entry and are not counted as misses.
type Stats struct {
	Hits        int64
	Misses      int64
	Expirations int64
	Failures    int64
	Entries     int
	HitRate     float64
}
