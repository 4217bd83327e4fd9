package responder

// Tone is a free-text style label for the generated reply. The three
// constants are the conventional values; any other text is passed through.
type Tone string

const (
	Formal   Tone = "Formal"
	Friendly Tone = "Friendly"
	Casual   Tone = "Casual"
)

// DefaultTone applies when a request leaves the tone empty.
const DefaultTone = Formal

// Tones lists the recognized tones in the order the form UI offers them.
var Tones = []Tone{Formal, Casual, Friendly}

// Recognized reports whether t is one of the conventional tones.
func (t Tone) Recognized() bool {
	for _, known := range Tones {
		if t == known {
			return true
		}
	}
	return false
}

// Or returns t, or fallback when t is empty.
func (t Tone) Or(fallback Tone) Tone {
	if t == "" {
		return fallback
	}
	return t
}

func (t Tone) String() string {
	return string(t)
}
