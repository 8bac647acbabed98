package advisor

import "strings"

// Topic is the branch a prompt is routed to.
type Topic int

const (
	TopicFertilizer Topic = iota
	TopicHumidity
	TopicTemperature
	TopicUnknown
)

func (t Topic) String() string {
	switch t {
	case TopicFertilizer:
		return "fertilizer"
	case TopicHumidity:
		return "humidity"
	case TopicTemperature:
		return "temperature"
	default:
		return "unknown"
	}
}

// keywords are tested in order; the first hit wins.
var keywords = []struct {
	word  string
	topic Topic
}{
	{"fertilizer", TopicFertilizer},
	{"humidity", TopicHumidity},
	{"temperature", TopicTemperature},
}

// Classify routes a prompt by case-insensitive substring search.
func Classify(prompt string) Topic {
	lower := strings.ToLower(prompt)
	for _, k := range keywords {
		if strings.Contains(lower, k.word) {
			return k.topic
		}
	}
	return TopicUnknown
}

// ExtractCropType returns the text after the last literal "for", trimmed.
// The match is case-sensitive and does not respect word boundaries, so a crop
// name containing "for" is cut. Without any "for" the whole prompt is used.
func ExtractCropType(prompt string) string {
	if i := strings.LastIndex(prompt, "for"); i >= 0 {
		prompt = prompt[i+len("for"):]
	}
	return strings.TrimSpace(prompt)
}
