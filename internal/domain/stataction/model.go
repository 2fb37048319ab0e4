package stataction

// StatAction is a static reference row; ingestion only ever looks one up.
type StatAction struct {
	ID   int64
	Name string
}
