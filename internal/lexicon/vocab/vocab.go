// Package vocab provides the token vocabulary of the probed language model.
// A word passes the filter only if the model has a dedicated token for it.
package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sugarme/tokenizer/pretrained"

	"github.com/heartmarshall/lexprobe/internal/domain"
)

// Format selects how a vocabulary file is read.
type Format string

const (
	// FormatTokenizer is a HuggingFace tokenizer.json file.
	FormatTokenizer Format = "tokenizer"
	// FormatText is a plain list with one token per line; anything after a
	// tab (e.g. a token id) is ignored.
	FormatText Format = "text"
)

func (f Format) IsValid() bool {
	return f == FormatTokenizer || f == FormatText
}

// Vocabulary is an exact-match token set.
type Vocabulary struct {
	tokens map[string]struct{}
}

// New builds a vocabulary from the given tokens.
func New(tokens ...string) *Vocabulary {
	v := &Vocabulary{tokens: make(map[string]struct{}, len(tokens))}
	for _, t := range tokens {
		v.add(t)
	}
	return v
}

// add registers the NFC form of token; blank tokens are ignored.
func (v *Vocabulary) add(token string) {
	token = domain.NormalizeWord(token)
	if token == "" {
		return
	}
	v.tokens[token] = struct{}{}
}

// addPiece registers token and, when it ends with stripSuffix, the bare word.
func (v *Vocabulary) addPiece(token, stripSuffix string) {
	v.add(token)
	if stripSuffix != "" && strings.HasSuffix(token, stripSuffix) {
		v.add(strings.TrimSuffix(token, stripSuffix))
	}
}

// Contains reports whether token is in the vocabulary.
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.tokens[token]
	return ok
}

// Len returns the number of distinct tokens.
func (v *Vocabulary) Len() int { return len(v.tokens) }

// Load dispatches on format.
func Load(format Format, path, stripSuffix string) (*Vocabulary, error) {
	switch format {
	case FormatTokenizer:
		return LoadTokenizer(path, stripSuffix)
	case FormatText:
		return LoadText(path, stripSuffix)
	default:
		return nil, fmt.Errorf("vocabulary: unknown format %q", format)
	}
}

// LoadTokenizer reads the vocabulary of a HuggingFace tokenizer.json.
// Membership is exact by default. BPE vocabularies mark word-final pieces
// with a suffix (HerBERT uses "</w>"); when stripSuffix is set, such tokens
// are also registered without it so that whole words match their surface form.
func LoadTokenizer(path, stripSuffix string) (*Vocabulary, error) {
	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("vocabulary: load tokenizer %s: %w", path, err)
	}
	return fromTokenMap(tk.GetVocab(true), stripSuffix), nil
}

func fromTokenMap(tokens map[string]int, stripSuffix string) *Vocabulary {
	v := &Vocabulary{tokens: make(map[string]struct{}, len(tokens))}
	for tok := range tokens {
		v.addPiece(tok, stripSuffix)
	}
	return v
}

// LoadText reads a plain token list. stripSuffix works as in LoadTokenizer.
func LoadText(path, stripSuffix string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocabulary: open %s: %w", path, err)
	}
	defer f.Close()

	v := &Vocabulary{tokens: make(map[string]struct{})}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		tok, _, _ := strings.Cut(sc.Text(), "\t")
		v.addPiece(tok, stripSuffix)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("vocabulary: read %s: %w", path, err)
	}
	return v, nil
}
