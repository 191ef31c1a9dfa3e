// Package match ranks a resume against stored job profiles with TF-IDF
// weighted cosine similarity. The ranking is deterministic and fully local.
package match

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/artem13815/jobmatch/pkg/jobs"
	"github.com/artem13815/jobmatch/pkg/nlp"
)

// Ranking is one job's similarity to the resume, in [0,1].
type Ranking struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Score float64   `json:"score"`
}

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else",
		"in", "on", "at", "to", "of", "for", "with", "by", "from", "as",
		"is", "are", "was", "were", "be", "been", "being",
		"i", "we", "you", "they", "it", "this", "that", "these", "those",
		"my", "our", "your", "their", "its",
		"have", "has", "had", "do", "does", "did", "will", "would", "can",
		"not", "no", "so", "than", "too", "very", "s", "t",
	} {
		stopwords[w] = struct{}{}
	}
}

// Rank scores every job against the resume text and returns results sorted by
// descending score. Empty input yields an empty ranking, not an error.
func Rank(resumeText string, all []jobs.Job) []Ranking {
	out := []Ranking{}
	if len(all) == 0 {
		return out
	}

	docs := make([][]string, 0, len(all)+1)
	for _, j := range all {
		docs = append(docs, tokenize(j.Description))
	}
	docs = append(docs, tokenize(resumeText))

	vectors := vectorize(docs)
	resumeVec := vectors[len(vectors)-1]

	for i, j := range all {
		out = append(out, Ranking{
			ID:    j.ID,
			Title: j.Title,
			Score: cosine(vectors[i], resumeVec),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func tokenize(text string) []string {
	var kept []string
	for _, tok := range nlp.Tokens(nlp.Normalize(text)) {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// vectorize builds smoothed TF-IDF vectors over the shared vocabulary:
// idf = ln((1+n)/(1+df)) + 1.
func vectorize(docs [][]string) []map[string]float64 {
	n := len(docs)
	df := map[string]int{}
	counts := make([]map[string]int, n)
	for i, doc := range docs {
		counts[i] = map[string]int{}
		for _, tok := range doc {
			counts[i][tok]++
		}
		for tok := range counts[i] {
			df[tok]++
		}
	}

	vectors := make([]map[string]float64, n)
	for i := range docs {
		vec := make(map[string]float64, len(counts[i]))
		for tok, tf := range counts[i] {
			idf := math.Log(float64(1+n)/float64(1+df[tok])) + 1
			vec[tok] = float64(tf) * idf
		}
		vectors[i] = vec
	}
	return vectors
}

func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, na, nb float64
	for tok, av := range a {
		na += av * av
		if bv, ok := b[tok]; ok {
			dot += av * bv
		}
	}
	for _, bv := range b {
		nb += bv * bv
	}
	if dot == 0 || na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
