package ports

// Page carries normalized pagination parameters. Limit is always within
// [1, 100] and Offset is never negative by the time a repository sees it.
type Page struct {
	Limit  int
	Offset int
}
