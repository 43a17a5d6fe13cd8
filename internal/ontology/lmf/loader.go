// Package lmf loads Global WordNet LMF JSON files (the format distributed by
// Open English WordNet and the Open Multilingual Wordnet, plWordNet included)
// into an ontology.Graph.
// Pure function: file path in, graph out. No database dependencies.
package lmf

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/heartmarshall/lexprobe/internal/domain"
	"github.com/heartmarshall/lexprobe/internal/ontology"
)

// Stats holds loader statistics for logging.
type Stats struct {
	Lexicons          int
	SkippedLexicons   int
	Entries           int
	Synsets           int
	DanglingRelations int
}

// GWN-LMF JSON internal types for deserialization.

type gwnDocument struct {
	Graph []gwnLexicon `json:"@graph"`
}

type gwnLexicon struct {
	ID       string      `json:"@id"`
	Language string      `json:"language"`
	Entries  []gwnEntry  `json:"entry"`
	Synsets  []gwnSynset `json:"synset"`
}

type gwnEntry struct {
	ID    string     `json:"@id"`
	Lemma gwnLemma   `json:"lemma"`
	Sense []gwnSense `json:"sense"`
}

type gwnLemma struct {
	WrittenForm  string `json:"writtenForm"`
	PartOfSpeech string `json:"partOfSpeech"`
}

type gwnSense struct {
	ID        string        `json:"@id"`
	Synset    string        `json:"synset"`
	Relations []gwnRelation `json:"relations"`
}

type gwnSynset struct {
	ID           string        `json:"@id"`
	PartOfSpeech string        `json:"partOfSpeech"`
	Members      []string      `json:"members"`
	Relations    []gwnRelation `json:"relations"`
}

type gwnRelation struct {
	RelType string `json:"relType"`
	Target  string `json:"target"`
}

// Load reads a GWN-LMF JSON file. When lang is non-empty only lexicons with
// that language code are loaded.
func Load(path, lang string) (*ontology.Graph, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open ontology: %w", err)
	}
	defer f.Close()

	g, stats, err := Read(f, lang)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read ontology %s: %w", path, err)
	}
	return g, stats, nil
}

// Read decodes a GWN-LMF JSON document from r.
func Read(r io.Reader, lang string) (*ontology.Graph, Stats, error) {
	var doc gwnDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, Stats{}, fmt.Errorf("decode JSON: %w", err)
	}

	g := ontology.NewGraph()
	var stats Stats

	for _, lex := range doc.Graph {
		if lang != "" && lex.Language != lang {
			stats.SkippedLexicons++
			continue
		}
		stats.Lexicons++
		if err := loadLexicon(g, lex, &stats); err != nil {
			return nil, Stats{}, fmt.Errorf("lexicon %s: %w", lex.ID, err)
		}
	}

	return g, stats, nil
}

func loadLexicon(g *ontology.Graph, lex gwnLexicon, stats *Stats) error {
	// Step 1: Register synsets.
	for _, syn := range lex.Synsets {
		if _, err := g.AddSense(syn.ID, domain.ParsePartOfSpeech(syn.PartOfSpeech)); err != nil {
			return err
		}
		stats.Synsets++
	}

	// Step 2: Attach lemmas; build senseID → lemma for sense-level relations.
	senseToLemma := make(map[string]*ontology.Lemma)
	entryLemmas := make(map[string]map[string]*ontology.Lemma) // synsetID → entryID → lemma
	for _, entry := range lex.Entries {
		stats.Entries++
		for _, sense := range entry.Sense {
			if _, ok := g.Sense(sense.Synset); !ok {
				if _, err := g.AddSense(sense.Synset, domain.ParsePartOfSpeech(entry.Lemma.PartOfSpeech)); err != nil {
					return err
				}
				stats.Synsets++
			}
			l, err := g.AddLemma(sense.Synset, entry.Lemma.WrittenForm)
			if err != nil {
				return fmt.Errorf("entry %s: %w", entry.ID, err)
			}
			senseToLemma[sense.ID] = l
			if entryLemmas[sense.Synset] == nil {
				entryLemmas[sense.Synset] = make(map[string]*ontology.Lemma)
			}
			entryLemmas[sense.Synset][entry.ID] = l
		}
	}

	// Step 3: Order lemmas by synset membership where it is declared.
	for _, syn := range lex.Synsets {
		if len(syn.Members) == 0 {
			continue
		}
		s, _ := g.Sense(syn.ID)
		orderLemmas(s, syn.Members, entryLemmas[syn.ID])
	}

	// Step 4: Sense-level antonyms.
	for _, entry := range lex.Entries {
		for _, sense := range entry.Sense {
			for _, rel := range sense.Relations {
				if rel.RelType != "antonym" {
					continue
				}
				target, ok := senseToLemma[rel.Target]
				if !ok {
					stats.DanglingRelations++
					continue
				}
				if err := g.AddAntonym(senseToLemma[sense.ID], target); err != nil {
					return err
				}
			}
		}
	}

	// Step 5: Synset-level taxonomy. Hyponym links are stored inverted.
	for _, syn := range lex.Synsets {
		for _, rel := range syn.Relations {
			var child, parent string
			switch rel.RelType {
			case "hypernym", "instance_hypernym":
				child, parent = syn.ID, rel.Target
			case "hyponym", "instance_hyponym":
				child, parent = rel.Target, syn.ID
			default:
				continue
			}
			if _, ok := g.Sense(rel.Target); !ok || child == parent {
				stats.DanglingRelations++
				continue
			}
			if err := g.AddHypernym(child, parent); err != nil {
				return err
			}
		}
	}

	return nil
}

// orderLemmas moves the lemmas listed in members (entry ids) to the front of
// s.Lemmas in member order; unlisted lemmas keep their relative order.
func orderLemmas(s *ontology.Sense, members []string, byEntry map[string]*ontology.Lemma) {
	ordered := make([]*ontology.Lemma, 0, len(s.Lemmas))
	for _, id := range members {
		if l, ok := byEntry[id]; ok && !slices.Contains(ordered, l) {
			ordered = append(ordered, l)
		}
	}
	for _, l := range s.Lemmas {
		if !slices.Contains(ordered, l) {
			ordered = append(ordered, l)
		}
	}
	s.Lemmas = ordered
}
