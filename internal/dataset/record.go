// Package dataset turns extracted word relations into numbered, split-labelled
// records and streams them to sinks.
package dataset

import (
	"strconv"
	"strings"

	"github.com/heartmarshall/lexprobe/internal/domain"
)

// Annotated is a word with its part of speech, frequency score and corpus
// count.
type Annotated struct {
	Name  string              `json:"name"`
	POS   domain.PartOfSpeech `json:"pos"`
	Score float64             `json:"freq"`
	Count int                 `json:"count"`
}

// Record is one dataset line: a keyword and the targets of one relation.
type Record struct {
	ID       int
	Split    domain.Split
	Word     Annotated
	Relation domain.Relation
	Targets  []Annotated
}

// FormatLine renders r without the trailing newline:
//
//	id<TAB>split<TAB>word (pos,freq,count)<TAB>relation<TAB>target (pos,freq,count)...
func FormatLine(r Record) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(r.ID))
	b.WriteByte('\t')
	b.WriteString(r.Split.String())
	b.WriteByte('\t')
	writeAnnotated(&b, r.Word)
	b.WriteByte('\t')
	b.WriteString(r.Relation.String())
	for _, t := range r.Targets {
		b.WriteByte('\t')
		writeAnnotated(&b, t)
	}
	return b.String()
}

func writeAnnotated(b *strings.Builder, a Annotated) {
	b.WriteString(a.Name)
	b.WriteString(" (")
	b.WriteString(a.POS.String())
	b.WriteByte(',')
	b.WriteString(FormatScore(a.Score))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(a.Count))
	b.WriteByte(')')
}

// FormatScore prints the shortest decimal that round-trips f, always with a
// fractional part: 0 -> "0.0", 4.25 -> "4.25".
func FormatScore(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}
