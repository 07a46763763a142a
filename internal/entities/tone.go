package entities

// Tone is a rewriting style offered by the translation API.
//
// The set of tones is closed: the only valid values are ToneYoda and
// ToneShakespeare. The zero Tone is not a tone.
type Tone struct {
	segment string
}

var (
	// ToneYoda rewrites text the way Yoda speaks
	ToneYoda = Tone{segment: "yoda"}
	// ToneShakespeare rewrites text in Shakespearean English
	ToneShakespeare = Tone{segment: "shakespeare"}
)

// Segment returns the path segment of the translation endpoint for the tone
func (t Tone) Segment() string {
	return t.segment
}

// IsZero reports whether t is the zero Tone
func (t Tone) IsZero() bool {
	return t.segment == ""
}

// String implements fmt.Stringer
func (t Tone) String() string {
	if t.IsZero() {
		return "none"
	}
	return t.segment
}
