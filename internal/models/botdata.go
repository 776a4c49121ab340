package models

// Challenger is the persisted record of a user who confirmed at least one duel.
type Challenger struct {
	// Name is the display name captured on first confirmation.
	Name string `json:"name"`
	// DuelsCount is incremented on every confirmed duel.
	DuelsCount int `json:"duels_count"`
	// JoinDate is the day of the first confirmed duel, formatted YYYY-MM-DD.
	JoinDate string `json:"join_date"`
}

// BotData is the single persisted document. All three collections are always
// written together so a crash cannot leave them mutually inconsistent.
type BotData struct {
	// Moderators are the user IDs allowed to ask trivia questions.
	Moderators []int64 `json:"moderators"`
	// SavedTables maps a table name to its saved text content.
	SavedTables map[string]string `json:"saved_tables"`
	// Challengers is keyed by the decimal user ID.
	Challengers map[string]*Challenger `json:"challengers"`
}

// NewBotData returns an empty document with all collections initialized.
func NewBotData() *BotData {
	return &BotData{
		Moderators:  []int64{},
		SavedTables: make(map[string]string),
		Challengers: make(map[string]*Challenger),
	}
}

// HasModerator reports whether the given user ID is in the moderator roster.
func (d *BotData) HasModerator(userID int64) bool {
	for _, id := range d.Moderators {
		if id == userID {
			return true
		}
	}
	return false
}
