package probe

// Policy bounds relation extraction and corruption.
type Policy struct {
	// HypernymMinDepth is the number of root-most path positions that never
	// qualify as hypernyms.
	HypernymMinDepth int
	// HypernymWindow is the number of positions directly above the leaf
	// that qualify as hypernyms.
	HypernymWindow int
	// ClosureDepth bounds the hyponym closure used for co-hyponyms.
	ClosureDepth int

	HypernymMin  int
	HypernymMax  int
	CohyponymMin int
	CohyponymMax int

	// ExpansionSenses is how many of the lowest-scored senses feed
	// hypernym and co-hyponym extraction.
	ExpansionSenses int
	// CorruptionMinCount is the corpus count a word needs before it is
	// corrupted.
	CorruptionMinCount int
}

// DefaultPolicy returns the limits used to build WNLaMPro.
func DefaultPolicy() Policy {
	return Policy{
		HypernymMinDepth:   5,
		HypernymWindow:     3,
		ClosureDepth:       4,
		HypernymMin:        3,
		HypernymMax:        20,
		CohyponymMin:       10,
		CohyponymMax:       50,
		ExpansionSenses:    2,
		CorruptionMinCount: 100,
	}
}
