package dictionary

// Types in this file mirror the Free Dictionary API wire format
// (api.dictionaryapi.dev/api/v2/entries/en/{word}).

// Phonetic is one pronunciation variant of a dictionary entry. Either
// field may be empty; entries with audio often lack IPA text and vice
// versa.
type Phonetic struct {
	Text  string `json:"text,omitempty"`
	Audio string `json:"audio,omitempty"`
}

// Definition is a single sense under a part of speech.
type Definition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example,omitempty"`
	Synonyms   []string `json:"synonyms,omitempty"`
	Antonyms   []string `json:"antonyms,omitempty"`
}

// Meaning groups definitions by part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

// Entry is one dictionary record as returned by the upstream API.
type Entry struct {
	Word      string     `json:"word"`
	Phonetics []Phonetic `json:"phonetics"`
	Meanings  []Meaning  `json:"meanings"`
}
