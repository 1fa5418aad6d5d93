package acronyms

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"
)

// Stats summarises one aggregation run.
type Stats struct {
	Sentences  int64
	Candidates int64
}

// Aggregate drains sentences, detecting acronyms in each one in arrival
// order, and returns the resulting frequency table. An empty sequence
// yields an empty table.
func Aggregate(sentences iter.Seq[string]) Table {
	table := NewTable()
	for sentence := range sentences {
		table.AddAll(Detect(sentence))
	}
	return table
}

// AggregateSlice is Aggregate over a materialized list.
func AggregateSlice(sentences []string) Table {
	return Aggregate(slices.Values(sentences))
}

// AggregateSource drains a fallible sentence producer. The first producer
// error aborts the aggregation; the table built so far is discarded.
// The context is checked between sentences.
func AggregateSource(ctx context.Context, sentences iter.Seq2[string, error]) (Table, Stats, error) {
	table := NewTable()
	var stats Stats

	for sentence, err := range sentences {
		if err != nil {
			return nil, stats, fmt.Errorf("read sentence %d: %w", stats.Sentences+1, err)
		}
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		stats.Sentences++

		cands := Detect(sentence)
		stats.Candidates += int64(len(cands))
		table.AddAll(cands)
	}

	return table, stats, nil
}

// AggregateParallel runs detection on several workers. Workers send their
// candidates to a single merge loop that owns the table, so the result is
// identical to AggregateSource for the same input. workers <= 1 falls back
// to AggregateSource.
func AggregateParallel(ctx context.Context, sentences iter.Seq2[string, error], workers int) (Table, Stats, error) {
	if workers <= 1 {
		return AggregateSource(ctx, sentences)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan string, workers)
	results := make(chan []Candidate, workers)
	producerDone := make(chan struct{})

	var (
		readErr error
		read    int64
	)

	// The producer is the only goroutine that pulls from the sequence.
	go func() {
		defer close(producerDone)
		defer close(jobs)
		for sentence, err := range sentences {
			if err != nil {
				readErr = fmt.Errorf("read sentence %d: %w", read+1, err)
				cancel()
				return
			}
			select {
			case jobs <- sentence:
				read++
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sentence := range jobs {
				select {
				case results <- Detect(sentence):
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	table := NewTable()
	var stats Stats
	for cands := range results {
		stats.Candidates += int64(len(cands))
		table.AddAll(cands)
	}

	<-producerDone
	stats.Sentences = read

	if readErr != nil {
		return nil, stats, readErr
	}
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}
	return table, stats, nil
}
