package probable

import "testing"

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantOK     bool
		wantHand   Handedness
		wantName   string
		wantOppose string
	}{
		{
			name:       "away game",
			text:       "@ NYY John Smith (L)",
			wantOK:     true,
			wantHand:   Left,
			wantName:   "John Smith",
			wantOppose: "@ NYY",
		},
		{
			name:       "home game",
			text:       "BOS Jane Doe (R)",
			wantOK:     true,
			wantHand:   Right,
			wantName:   "Jane Doe",
			wantOppose: "v BOS",
		},
		{
			name:       "away marker without space",
			text:       "@SEA Logan Gilbert (R)",
			wantOK:     true,
			wantHand:   Right,
			wantName:   "Logan Gilbert",
			wantOppose: "@ SEA",
		},
		{
			name:       "stripped cell text",
			text:       "@NYYJohn Smith(L)",
			wantOK:     true,
			wantHand:   Left,
			wantName:   "John Smith",
			wantOppose: "@ NYY",
		},
		{
			name:       "extra inner whitespace",
			text:       "TEX   Nathan  Eovaldi   (R)",
			wantOK:     true,
			wantHand:   Right,
			wantName:   "Nathan  Eovaldi",
			wantOppose: "v TEX",
		},
		{
			name:       "leading whitespace",
			text:       "  @ LAD Clayton Kershaw (L)",
			wantOK:     true,
			wantHand:   Left,
			wantName:   "Clayton Kershaw",
			wantOppose: "@ LAD",
		},
		{
			name:       "no-break spaces",
			text:       "BOS\u00a0Jane\u00a0Doe\u00a0(R)",
			wantOK:     true,
			wantHand:   Right,
			wantName:   "Jane Doe",
			wantOppose: "v BOS",
		},
		{
			name:       "no-break space after away marker",
			text:       "@\u00a0NYY John Smith (L)",
			wantOK:     true,
			wantHand:   Left,
			wantName:   "John Smith",
			wantOppose: "@ NYY",
		},
		{name: "trailing no-break space", text: "NYY John Smith (L)\u00a0"},
		{
			name:       "blank name",
			text:       "NYY (L)",
			wantOK:     true,
			wantHand:   Left,
			wantName:   "",
			wantOppose: "v NYY",
		},
		{name: "empty", text: ""},
		{name: "TBD", text: "TBD"},
		{name: "opponent only", text: "NYY"},
		{name: "no handedness", text: "NYY John Smith"},
		{name: "trailing characters", text: "NYY John Smith (L) *"},
		{name: "lowercase opponent", text: "nyy John Smith (L)"},
		{name: "switch handedness", text: "NYY John Smith (S)"},
		{name: "punctuation in name", text: "NYY J.P. Sears (L)"},
		{name: "off day", text: "OFF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := ParseEntry(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ParseEntry(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if !tt.wantOK {
				if entry != nil {
					t.Errorf("ParseEntry(%q) = %+v, want nil", tt.text, entry)
				}
				return
			}
			if entry.Handedness != tt.wantHand {
				t.Errorf("Handedness = %q, want %q", entry.Handedness, tt.wantHand)
			}
			if entry.Pitcher != tt.wantName {
				t.Errorf("Pitcher = %q, want %q", entry.Pitcher, tt.wantName)
			}
			if entry.Opponent != tt.wantOppose {
				t.Errorf("Opponent = %q, want %q", entry.Opponent, tt.wantOppose)
			}
		})
	}
}

func TestNewStart(t *testing.T) {
	entry := &Entry{Handedness: Right, Pitcher: "Jane Doe", Opponent: "@ BOS"}

	s := NewStart("2026-04-02", entry)
	if s.Date != "2026-04-02" || s.Pitcher != "Jane Doe" || s.Handedness != Right || s.Opponent != "@ BOS" {
		t.Errorf("NewStart() = %+v", s)
	}
	if !s.HasDate() {
		t.Error("HasDate() = false, want true")
	}
	if !s.IsAway() {
		t.Error("IsAway() = false, want true")
	}

	unknown := NewStart("", entry)
	if unknown.Date != UnknownDate {
		t.Errorf("Date = %q, want %q", unknown.Date, UnknownDate)
	}
	if unknown.HasDate() {
		t.Error("HasDate() = true, want false")
	}
}
