package vocab

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/dashd/internal/logging"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/persist"
	"github.com/sandeepkv93/dashd/internal/storage"
)

// scripted returns the given words in order, then repeats the last one.
func scripted(words ...string) (Generator, *int) {
	var mu sync.Mutex
	calls := 0
	gen := GeneratorFunc(func(ctx context.Context, lang model.Language, avoid []string) (model.WordPair, error) {
		mu.Lock()
		defer mu.Unlock()
		i := calls
		if i >= len(words) {
			i = len(words) - 1
		}
		calls++
		return model.WordPair{Primary: words[i], Translation: "뜻", LanguageCode: lang.Code()}, nil
	})
	return gen, &calls
}

func newTestController(t *testing.T, gen Generator, kv storage.KV, opts ...Option) *Controller {
	t.Helper()
	c := NewController(gen, persist.New(kv, logging.Discard()), logging.Discard(), opts...)
	c.Hydrate(context.Background())
	return c
}

func TestFetchDuplicateRetriesThenAccepts(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV(storage.Options{})
	if err := persist.New(kv, logging.Discard()).SaveHistory(ctx, []string{"hello"}); err != nil {
		t.Fatalf("seed history: %v", err)
	}

	gen, calls := scripted("Hello", "world")
	var seen []State
	c := newTestController(t, gen, kv, WithObserver(func(tr Transition) { seen = append(seen, tr.To) }))

	pair, err := c.Fetch(ctx, model.LanguageEnglish)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if pair.Primary != "world" || *calls != 2 {
		t.Fatalf("got %q after %d calls, want world after 2", pair.Primary, *calls)
	}
	hist := c.History()
	if len(hist) != 2 || hist[0] != "world" || hist[1] != "hello" {
		t.Fatalf("unexpected history %v", hist)
	}
	want := []State{StateFetching, StateRejectedRetry, StateFetching, StateAccepted}
	if len(seen) != len(want) {
		t.Fatalf("transitions %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("transitions %v, want %v", seen, want)
		}
	}
	if c.State() != StateAccepted || c.Busy() {
		t.Fatalf("state=%v busy=%v after accept", c.State(), c.Busy())
	}

	persisted := persist.New(kv, logging.Discard()).LoadHistory(ctx)
	if len(persisted) != 2 || persisted[0] != "world" {
		t.Fatalf("history not persisted: %v", persisted)
	}
	if cur, ok := c.Current(); !ok || cur.Primary != "world" {
		t.Fatalf("current = %#v, %v", cur, ok)
	}
}

func TestFetchGivesUpAfterMaxRetries(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV(storage.Options{})
	_ = persist.New(kv, logging.Discard()).SaveHistory(ctx, []string{"hello"})

	gen, calls := scripted("hello")
	c := newTestController(t, gen, kv, WithMaxRetries(3))
	_, err := c.Fetch(ctx, model.LanguageEnglish)
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("expected ErrRetriesExhausted, got %v", err)
	}
	if *calls != 4 {
		t.Fatalf("expected 1 attempt plus 3 retries, got %d calls", *calls)
	}
	if c.State() != StateFailed || c.Busy() {
		t.Fatalf("state=%v busy=%v", c.State(), c.Busy())
	}
	if hist := c.History(); len(hist) != 1 {
		t.Fatalf("history changed on failure: %v", hist)
	}
}

func TestFetchRemoteErrorLeavesHistory(t *testing.T) {
	boom := errors.New("503 service unavailable")
	gen := GeneratorFunc(func(context.Context, model.Language, []string) (model.WordPair, error) {
		return model.WordPair{}, boom
	})
	c := newTestController(t, gen, storage.NewMemoryKV(storage.Options{}))
	_, err := c.Fetch(context.Background(), model.LanguageThai)
	var ferr *FetchError
	if !errors.As(err, &ferr) || !errors.Is(err, boom) || ferr.Attempt != 1 {
		t.Fatalf("expected FetchError wrapping cause, got %v", err)
	}
	if len(c.History()) != 0 || c.State() != StateFailed {
		t.Fatalf("unexpected state after failure: %v %v", c.History(), c.State())
	}
}

func TestFetchRejectsMalformedPair(t *testing.T) {
	gen := GeneratorFunc(func(_ context.Context, lang model.Language, _ []string) (model.WordPair, error) {
		return model.WordPair{Primary: "hello", LanguageCode: lang.Code()}, nil
	})
	c := newTestController(t, gen, storage.NewMemoryKV(storage.Options{}))
	_, err := c.Fetch(context.Background(), model.LanguageEnglish)
	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestFetchWhileBusyIsDropped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	gen := GeneratorFunc(func(_ context.Context, lang model.Language, _ []string) (model.WordPair, error) {
		close(started)
		<-release
		return model.WordPair{Primary: "slow", Translation: "느린", LanguageCode: lang.Code()}, nil
	})
	c := newTestController(t, gen, storage.NewMemoryKV(storage.Options{}))

	done := make(chan error, 1)
	go func() {
		_, err := c.Fetch(context.Background(), model.LanguageEnglish)
		done <- err
	}()
	<-started
	if !c.Busy() {
		t.Fatal("expected busy while generator blocks")
	}
	if _, err := c.Fetch(context.Background(), model.LanguageEnglish); !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if c.Busy() {
		t.Fatal("expected idle after completion")
	}
}

func TestFetchAttemptTimeout(t *testing.T) {
	gen := GeneratorFunc(func(ctx context.Context, _ model.Language, _ []string) (model.WordPair, error) {
		<-ctx.Done()
		return model.WordPair{}, ctx.Err()
	})
	c := newTestController(t, gen, storage.NewMemoryKV(storage.Options{}), WithTimeout(20*time.Millisecond))
	_, err := c.Fetch(context.Background(), model.LanguageEnglish)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if c.Busy() {
		t.Fatal("controller wedged after timeout")
	}
}

func TestFetchPassesHistoryAsAvoidList(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV(storage.Options{})
	_ = persist.New(kv, logging.Discard()).SaveHistory(ctx, []string{"alpha", "beta"})
	var got []string
	gen := GeneratorFunc(func(_ context.Context, lang model.Language, avoid []string) (model.WordPair, error) {
		got = avoid
		return model.WordPair{Primary: "gamma", Translation: "감마", LanguageCode: lang.Code()}, nil
	})
	c := newTestController(t, gen, kv)
	if _, err := c.Fetch(ctx, model.LanguageEnglish); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 2 || got[0] != "alpha" {
		t.Fatalf("avoid = %v", got)
	}
}
