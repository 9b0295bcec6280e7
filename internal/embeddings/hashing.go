package embeddings

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// HashingName identifies the feature-hashing embedder.
const HashingName = "hashing-v1"

// HashingEmbedder maps text into a fixed-size vector by hashing word
// unigrams, bigrams and character trigrams into buckets. It needs no model
// and no network, and identical text always yields the identical vector.
type HashingEmbedder struct {
	dims int
}

// NewHashingEmbedder creates a hashing embedder. dims <= 0 selects
// DefaultDimensions.
func NewHashingEmbedder(dims int) *HashingEmbedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &HashingEmbedder{dims: dims}
}

func (e *HashingEmbedder) Name() string {
	return HashingName
}

func (e *HashingEmbedder) Dimensions() int {
	return e.dims
}

func (e *HashingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = e.vector(text)
	}
	return out, nil
}

func (e *HashingEmbedder) vector(text string) []float32 {
	vec := make([]float32, e.dims)
	words := Tokenize(text)
	for i, w := range words {
		e.add(vec, "w:"+w, 1)
		if i > 0 {
			e.add(vec, "b:"+words[i-1]+" "+w, 0.5)
		}
		padded := "^" + w + "$"
		runes := []rune(padded)
		for j := 0; j+3 <= len(runes); j++ {
			e.add(vec, "t:"+string(runes[j:j+3]), 0.25)
		}
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		// Cosine similarity is undefined for the zero vector.
		vec[0] = 1
		return vec
	}
	n := math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / n)
	}
	return vec
}

// add uses the signed hashing trick so collisions cancel out on average.
func (e *HashingEmbedder) add(vec []float32, feature string, weight float32) {
	h := fnv.New64a()
	h.Write([]byte(feature))
	sum := h.Sum64()
	idx := int(sum % uint64(e.dims))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	vec[idx] += weight
}

// Tokenize lowercases text, strips diacritics and splits it into words of
// letters and digits. "Compresión" and "compresion" yield the same token.
func Tokenize(text string) []string {
	decomposed := norm.NFD.String(strings.ToLower(text))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}
