package domain

import "strings"

// PartOfSpeech is the WordNet part-of-speech tag of a sense.
type PartOfSpeech string

const (
	PartOfSpeechNoun      PartOfSpeech = "n"
	PartOfSpeechAdjective PartOfSpeech = "a"
	PartOfSpeechSatellite PartOfSpeech = "s"
	PartOfSpeechVerb      PartOfSpeech = "v"
	PartOfSpeechAdverb    PartOfSpeech = "r"
	PartOfSpeechOther     PartOfSpeech = "x"
)

func (p PartOfSpeech) String() string { return string(p) }

// Anchorable reports whether a sense of this part of speech may be chosen as
// the anchor of a word. Satellite adjectives are not.
func (p PartOfSpeech) Anchorable() bool {
	return p == PartOfSpeechNoun || p == PartOfSpeechAdjective
}

// ParsePartOfSpeech maps the tags used by WordNet dumps (single letters or
// full names) to a PartOfSpeech. Unknown tags map to PartOfSpeechOther.
func ParsePartOfSpeech(s string) PartOfSpeech {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "noun":
		return PartOfSpeechNoun
	case "a", "adj", "adjective":
		return PartOfSpeechAdjective
	case "s", "adjective_satellite", "satellite":
		return PartOfSpeechSatellite
	case "v", "verb":
		return PartOfSpeechVerb
	case "r", "adv", "adverb":
		return PartOfSpeechAdverb
	}
	return PartOfSpeechOther
}

// Relation names a lexical relation column of the dataset.
type Relation string

const (
	RelationAntonym    Relation = "antonym"
	RelationHypernym   Relation = "hypernym"
	RelationCohyponym  Relation = "cohyponym"
	RelationCorruption Relation = "corruption"
)

// Relations lists every relation in emission order.
var Relations = []Relation{
	RelationAntonym,
	RelationHypernym,
	RelationCohyponym,
	RelationCorruption,
}

func (r Relation) String() string { return string(r) }

func (r Relation) IsValid() bool {
	switch r {
	case RelationAntonym, RelationHypernym, RelationCohyponym, RelationCorruption:
		return true
	}
	return false
}

// Split is the dataset partition a record belongs to.
type Split string

const (
	SplitDev  Split = "dev"
	SplitTest Split = "test"
)

func (s Split) String() string { return string(s) }

func (s Split) IsValid() bool {
	return s == SplitDev || s == SplitTest
}

// WordEntry is a corpus token with its occurrence count.
type WordEntry struct {
	Word  string
	Count int
}

// Candidate is a related word accepted into a relation set.
// Corrupted spellings carry Count 0.
type Candidate struct {
	Name  string
	POS   PartOfSpeech
	Count int
}
