package embeddings

import (
	"context"
	"math"
	"testing"
)

func cosine(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Compresión y Optimización", []string{"compresion", "y", "optimizacion"}},
		{"**3DGS** (Gaussian-Splatting)", []string{"3dgs", "gaussian", "splatting"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := Tokenize(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestHashingEmbedderDeterministicAndNormalized(t *testing.T) {
	e := NewHashingEmbedder(128)
	vecs, err := e.Embed(context.Background(), []string{"opacity pruning", "opacity pruning", ""})
	if err != nil {
		t.Fatal(err)
	}
	if len(vecs) != 3 {
		t.Fatalf("got %d vectors", len(vecs))
	}
	for i, v := range vecs {
		if len(v) != 128 {
			t.Errorf("vector %d has %d dims", i, len(v))
		}
		if n := cosine(v, v); math.Abs(n-1) > 1e-5 {
			t.Errorf("vector %d norm^2 = %f", i, n)
		}
	}
	for i := range vecs[0] {
		if vecs[0][i] != vecs[1][i] {
			t.Fatal("same text produced different vectors")
		}
	}
}

func TestHashingEmbedderSimilarity(t *testing.T) {
	e := NewHashingEmbedder(0)
	if e.Dimensions() != DefaultDimensions {
		t.Errorf("Dimensions = %d", e.Dimensions())
	}
	vecs, err := e.Embed(context.Background(), []string{
		"pruning removes transparent gaussians",
		"which gaussians does pruning remove",
		"the PLY file stores vertices",
	})
	if err != nil {
		t.Fatal(err)
	}
	near := cosine(vecs[0], vecs[1])
	far := cosine(vecs[0], vecs[2])
	if near <= far {
		t.Errorf("related texts should be closer: near=%f far=%f", near, far)
	}
}

func TestEmbedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewHashingEmbedder(16).Embed(ctx, []string{"x"}); err == nil {
		t.Error("expected context error")
	}
}

func TestNew(t *testing.T) {
	e, err := New("", 64)
	if err != nil {
		t.Fatal(err)
	}
	if e.Name() != HashingName || e.Dimensions() != 64 {
		t.Errorf("got %s/%d", e.Name(), e.Dimensions())
	}
	if _, err := New("openai", 64); err == nil {
		t.Error("expected error for unknown embedder")
	}
}

func TestToChromemFunc(t *testing.T) {
	f := ToChromemFunc(NewHashingEmbedder(32))
	v, err := f(context.Background(), "splat")
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 32 {
		t.Errorf("len = %d", len(v))
	}
}
