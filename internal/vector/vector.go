// Package vector builds TF-IDF term vectors for sentences and compares them
// with cosine similarity.
package vector

// Vocabulary is the ordered set of distinct tokens seen across a set of
// sentences. Terms keep the order of first appearance, so column indexes are
// stable for a given input.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// BuildVocabulary collects every distinct token in docs.
func BuildVocabulary(docs [][]string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int)}
	for _, tokens := range docs {
		for _, token := range tokens {
			if _, exists := v.index[token]; exists {
				continue
			}
			v.index[token] = len(v.terms)
			v.terms = append(v.terms, token)
		}
	}
	return v
}

// Len returns the number of columns in vectors built from this vocabulary.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Index returns the column of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Terms returns a copy of the vocabulary in column order.
func (v *Vocabulary) Terms() []string {
	return append([]string(nil), v.terms...)
}
