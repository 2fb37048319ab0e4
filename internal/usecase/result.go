package usecase

// RowCounters tallies what happened to file rows before any write.
type RowCounters struct {
	Total   int `json:"total"`
	Kept    int `json:"kept"`
	Dropped int `json:"dropped"`
}

// WriteCounters tallies store effects for the kept rows.
type WriteCounters struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

// RowReject records why one row was dropped. Row is the 1-based data row
// position within the file, header excluded.
type RowReject struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Result summarizes one ingestion run. It is returned to the caller, logged,
// and published to the result webhook when one is configured.
type Result struct {
	Bucket       string        `json:"bucket"`
	Key          string        `json:"key"`
	Kind         string        `json:"kind,omitempty"`
	Skipped      bool          `json:"skipped,omitempty"`
	SkipReason   string        `json:"skip_reason,omitempty"`
	Rows         RowCounters   `json:"rows"`
	Writes       WriteCounters `json:"writes"`
	PlaysDeleted int64         `json:"plays_deleted,omitempty"`
	Rejects      []RowReject   `json:"rejects,omitempty"`
}

func (r *Result) reject(row int, reason string) {
	r.Rows.Dropped++
	r.Rejects = append(r.Rejects, RowReject{Row: row, Reason: reason})
}
