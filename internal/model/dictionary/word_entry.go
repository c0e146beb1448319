package dictionary

// WordEntry aggregates a lookup result: dictionary data merged with the
// LLM-generated explanation and examples. Produced fresh per request and
// never cached.
//
// When the dictionary upstream is unavailable the entry is synthesized
// entirely by the LLM: LLMGenerated is set and the Definition,
// Pronunciation and PartOfSpeech fields carry the fallback payload while
// Phonetics and Meanings stay empty.
type WordEntry struct {
	Word      string     `json:"word"`
	Phonetics []Phonetic `json:"phonetics"`
	Meanings  []Meaning  `json:"meanings"`

	Explanation string   `json:"explanation"`
	Examples    []string `json:"examples"`

	LLMGenerated  bool   `json:"openaiGenerated,omitempty"`
	Definition    string `json:"definition,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
	PartOfSpeech  string `json:"partOfSpeech,omitempty"`
}

// Pronunciation carries the IPA text and audio URL scanned from an
// entry's phonetics. The scans are independent: the IPA and the audio may
// come from different phonetic variants, and either may be empty.
type Pronunciation struct {
	Word     string `json:"word"`
	IPA      string `json:"ipa"`
	AudioURL string `json:"audioUrl"`
}
