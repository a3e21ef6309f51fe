package domain

// ExitEntryInterval is one trip abroad: the day the traveler left the U.S.
// and the day they came back. An interval missing either date is skipped.
type ExitEntryInterval struct {
	ExitDate  string `yaml:"exit_date" json:"exit_date"`
	EntryDate string `yaml:"entry_date" json:"entry_date"`
}

// PresenceQuery asks how many days of Year the traveler spent in the U.S.
type PresenceQuery struct {
	Year             int                 `yaml:"year" json:"year"`
	InitialEntryDate string              `yaml:"initial_entry_date" json:"initial_entry_date"`
	ProgramEndDate   string              `yaml:"program_end_date,omitempty" json:"program_end_date,omitempty"`
	Intervals        []ExitEntryInterval `yaml:"intervals,omitempty" json:"intervals,omitempty"`
}

// PresenceResult is the day count for the queried year
type PresenceResult struct {
	Year             int `json:"year"`
	DaysPresent      int `json:"days_present"`
	DaysInYear       int `json:"days_in_year"`
	SkippedIntervals int `json:"skipped_intervals"`
}
