package position

// Position is a static reference code (QB, WR, ...). Roster ingestion
// validates position columns against this table and nulls out unknown codes.
type Position struct {
	ID   string
	Name string
}
