package stub

import (
	"context"
	"errors"
	"testing"

	"facemark.io/infrastructure/vision/types"
)

func TestExtractIsDeterministic(t *testing.T) {
	extractor := New()
	first, err := extractor.Extract(context.Background(), []byte("same bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := extractor.Extract(context.Background(), []byte("same bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("vector lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("identical bytes produced different vectors at index %d", i)
		}
	}
}

func TestExtractDimensionsAndRange(t *testing.T) {
	extractor := New()
	vector, err := extractor.Extract(context.Background(), []byte("a student"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vector) != extractor.Dimensions() {
		t.Fatalf("expected %d dimensions, got %d", extractor.Dimensions(), len(vector))
	}
	for i, component := range vector {
		if component < 0 || component > 1 {
			t.Fatalf("component %d out of [0,1]: %f", i, component)
		}
	}
}

func TestExtractDistinguishesInputs(t *testing.T) {
	extractor := New()
	first, _ := extractor.Extract(context.Background(), []byte("student one"))
	second, _ := extractor.Extract(context.Background(), []byte("student two"))
	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different bytes produced identical vectors")
	}
}

func TestExtractRejectsEmptyInput(t *testing.T) {
	extractor := New()
	_, err := extractor.Extract(context.Background(), nil)
	if !errors.Is(err, types.ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestExtractHonoursCancelledContext(t *testing.T) {
	extractor := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := extractor.Extract(ctx, []byte("anything"))
	if !errors.Is(err, types.ErrExtractionTimeout) {
		t.Fatalf("expected ErrExtractionTimeout, got %v", err)
	}
}
