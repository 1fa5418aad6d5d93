package acronyms

import (
	"context"
	"errors"
	"iter"
	"reflect"
	"slices"
	"testing"
)

var demoSentences = []string{
	"In here we talk about Test Driven Development (TDD) and other stuff",
	"Mission Objectives (MI) are important, so is Test Driven Development (TDD)",
	"The United Kingdom (UK) is a lovely place to live, so are other places (e.g. USA)",
}

func demoTable() Table {
	return Table{
		{Acronym: "TDD", Expansion: NewExpansion("Test", "Driven", "Development")}: 2,
		{Acronym: "MI", Expansion: NewExpansion("Mission", "Objectives")}:          1,
		{Acronym: "UK", Expansion: NewExpansion("United", "Kingdom")}:              1,
	}
}

// seq2 wraps sentences as an infallible producer.
func seq2(sentences []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, s := range sentences {
			if !yield(s, nil) {
				return
			}
		}
	}
}

func TestAggregateDemoCorpus(t *testing.T) {
	got := AggregateSlice(demoSentences)
	if !reflect.DeepEqual(got, demoTable()) {
		t.Errorf("Aggregate = %v, want %v", got, demoTable())
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := AggregateSlice(nil)
	if got == nil {
		t.Fatal("Empty input should yield a non-nil table")
	}
	if got.Len() != 0 {
		t.Errorf("Empty input should yield an empty table, got %v", got)
	}
}

func TestAggregateLazySequence(t *testing.T) {
	pulled := 0
	gen := func(yield func(string) bool) {
		for _, s := range demoSentences {
			pulled++
			if !yield(s) {
				return
			}
		}
	}

	got := Aggregate(gen)
	if pulled != len(demoSentences) {
		t.Errorf("Aggregate should drain the sequence, pulled %d", pulled)
	}
	if !reflect.DeepEqual(got, demoTable()) {
		t.Errorf("Lazy input changed the result: %v", got)
	}
}

func TestAggregateDuplicatesMultiply(t *testing.T) {
	const k = 4
	var repeated []string
	for i := 0; i < k; i++ {
		repeated = append(repeated, demoSentences...)
	}

	once := AggregateSlice(demoSentences)
	many := AggregateSlice(repeated)

	if once.Len() != many.Len() {
		t.Fatalf("Distinct candidates differ: %d vs %d", once.Len(), many.Len())
	}
	for c, n := range once {
		if many[c] != n*k {
			t.Errorf("%v: count %d, want %d", c, many[c], n*k)
		}
	}
}

func TestAggregateOrderInsensitive(t *testing.T) {
	reversed := slices.Clone(demoSentences)
	slices.Reverse(reversed)

	if !reflect.DeepEqual(AggregateSlice(demoSentences), AggregateSlice(reversed)) {
		t.Error("Permuting input should not change counts")
	}
}

func TestAggregateSourceStats(t *testing.T) {
	table, stats, err := AggregateSource(context.Background(), seq2(demoSentences))
	if err != nil {
		t.Fatalf("AggregateSource: %v", err)
	}
	if !reflect.DeepEqual(table, demoTable()) {
		t.Errorf("AggregateSource = %v", table)
	}
	if stats.Sentences != 3 {
		t.Errorf("Expected 3 sentences, got %d", stats.Sentences)
	}
	if stats.Candidates != 4 {
		t.Errorf("Expected 4 candidates, got %d", stats.Candidates)
	}
}

func TestAggregateSourceAbortsOnError(t *testing.T) {
	boom := errors.New("boom")
	src := func(yield func(string, error) bool) {
		if !yield(demoSentences[0], nil) {
			return
		}
		if !yield("", boom) {
			return
		}
		yield(demoSentences[1], nil)
	}

	table, stats, err := AggregateSource(context.Background(), src)
	if !errors.Is(err, boom) {
		t.Fatalf("Expected producer error, got %v", err)
	}
	if table != nil {
		t.Error("Failed aggregation should not return a table")
	}
	if stats.Sentences != 1 {
		t.Errorf("Expected 1 sentence before failure, got %d", stats.Sentences)
	}
}

func TestAggregateSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := AggregateSource(ctx, seq2(demoSentences))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestAggregateParallelMatchesSequential(t *testing.T) {
	var corpus []string
	for i := 0; i < 50; i++ {
		corpus = append(corpus, demoSentences...)
		corpus = append(corpus, "nothing to see here", "the Royal Bank of Scotland (RBS) reported")
	}

	want, wantStats, err := AggregateSource(context.Background(), seq2(corpus))
	if err != nil {
		t.Fatalf("AggregateSource: %v", err)
	}

	for _, workers := range []int{0, 1, 2, 8} {
		got, stats, err := AggregateParallel(context.Background(), seq2(corpus), workers)
		if err != nil {
			t.Fatalf("AggregateParallel(%d): %v", workers, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("AggregateParallel(%d) differs from sequential result", workers)
		}
		if stats != wantStats {
			t.Errorf("AggregateParallel(%d) stats = %+v, want %+v", workers, stats, wantStats)
		}
	}
}

func TestAggregateParallelAbortsOnError(t *testing.T) {
	boom := errors.New("boom")
	src := func(yield func(string, error) bool) {
		for i := 0; i < 10; i++ {
			if !yield(demoSentences[0], nil) {
				return
			}
		}
		yield("", boom)
	}

	table, _, err := AggregateParallel(context.Background(), src, 4)
	if !errors.Is(err, boom) {
		t.Fatalf("Expected producer error, got %v", err)
	}
	if table != nil {
		t.Error("Failed aggregation should not return a table")
	}
}
