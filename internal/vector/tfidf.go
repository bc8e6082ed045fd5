package vector

import "math"

// TermFrequencies returns the TF row for one tokenized sentence: the count of
// each vocabulary term divided by the sentence's token count. A sentence with
// no tokens yields an all-zero row.
func TermFrequencies(tokens []string, vocab *Vocabulary) []float64 {
	tf := make([]float64, vocab.Len())
	if len(tokens) == 0 {
		return tf
	}

	for _, token := range tokens {
		if i, ok := vocab.Index(token); ok {
			tf[i]++
		}
	}

	total := float64(len(tokens))
	for i := range tf {
		tf[i] /= total
	}
	return tf
}

// InverseDocumentFrequencies returns ln(n / (df + 1)) per vocabulary term,
// where n is the number of documents and df the number of documents that
// contain the term at least once. Terms present in every document come out
// slightly negative.
func InverseDocumentFrequencies(docs [][]string, vocab *Vocabulary) []float64 {
	docFreq := make([]int, vocab.Len())
	for _, tokens := range docs {
		seen := make(map[int]bool, len(tokens))
		for _, token := range tokens {
			i, ok := vocab.Index(token)
			if !ok || seen[i] {
				continue
			}
			seen[i] = true
			docFreq[i]++
		}
	}

	n := float64(len(docs))
	idf := make([]float64, vocab.Len())
	for i, df := range docFreq {
		idf[i] = math.Log(n / float64(df+1))
	}
	return idf
}

// Vectorize tokenizes each sentence and returns one TF-IDF vector per
// sentence along with the shared IDF vector. All vectors have the length of
// the vocabulary built from these sentences.
func Vectorize(sentences []string) ([][]float64, []float64) {
	docs := make([][]string, len(sentences))
	for i, sentence := range sentences {
		docs[i] = Tokenize(sentence)
	}

	vocab := BuildVocabulary(docs)
	idf := InverseDocumentFrequencies(docs, vocab)

	vectors := make([][]float64, len(docs))
	for i, tokens := range docs {
		tf := TermFrequencies(tokens, vocab)
		for j := range tf {
			tf[j] *= idf[j]
		}
		vectors[i] = tf
	}
	return vectors, idf
}
