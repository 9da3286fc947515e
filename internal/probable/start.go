package probable

// UnknownDate is used for starts whose column header did not resolve to a date.
const UnknownDate = "Unknown"

// Handedness is the throwing hand of a pitcher
type Handedness string

const (
	Left  Handedness = "L"
	Right Handedness = "R"
)

// Entry is a single parsed grid cell
type Entry struct {
	Handedness Handedness
	Pitcher    string
	Opponent   string // "@ XXX" for away games, "v XXX" for home games
}

// Start represents a probable pitcher start
type Start struct {
	Date       string     `json:"date"` // YYYY-MM-DD or UnknownDate
	Handedness Handedness `json:"handedness"`
	Pitcher    string     `json:"pitcher"`
	Opponent   string     `json:"opponent"`
}

// NewStart joins a parsed entry with the date of its column
func NewStart(date string, entry *Entry) *Start {
	if date == "" {
		date = UnknownDate
	}
	return &Start{
		Date:       date,
		Handedness: entry.Handedness,
		Pitcher:    entry.Pitcher,
		Opponent:   entry.Opponent,
	}
}

// HasDate reports whether the start resolved to a calendar date
func (s *Start) HasDate() bool {
	return s.Date != UnknownDate
}

// IsAway reports whether the pitcher's team is the visitor
func (s *Start) IsAway() bool {
	return len(s.Opponent) > 0 && s.Opponent[0] == '@'
}
