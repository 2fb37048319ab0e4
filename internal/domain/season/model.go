package season

// Season is a reference row maintained outside ingestion; imports never
// create one.
type Season struct {
	ID   int64
	Year int
}
