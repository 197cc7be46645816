package promptcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/songyh0828/groqify-chatbot/internal/catalog"
	"github.com/songyh0828/groqify-chatbot/internal/groq"
	"github.com/songyh0828/groqify-chatbot/internal/metrics"
)

func testMetrics() *metrics.Metrics {
	return metrics.Global()
}

type fakeCompleter struct {
	reply   string
	err     error
	calls   int
	lastReq groq.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req groq.Request) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

var testCategory = catalog.Categories[0]

func TestMemoryCachesWithinTTL(t *testing.T) {
	fake := &fakeCompleter{reply: "1) a\n\n  2) b\n3) c\n4) d"}
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	c := NewMemory(Config{TTL: time.Hour, Completer: fake, Now: func() time.Time { return now }, Metrics: testMetrics()})

	first, err := c.Prompts(context.Background(), testCategory, "mixtral-8x7b-32768")
	if err != nil {
		t.Fatalf("prompts#1: %v", err)
	}
	want := []string{"1) a", "2) b", "3) c"}
	if len(first) != len(want) {
		t.Fatalf("expected 3 prompts, got %v", first)
	}
	for i := range want {
		if first[i] != want[i] {
			t.Fatalf("prompt %d: expected %q, got %q", i, want[i], first[i])
		}
	}
	if fake.lastReq.MaxTokens != 100 {
		t.Fatalf("expected max tokens 100, got %d", fake.lastReq.MaxTokens)
	}
	if len(fake.lastReq.Messages) != 1 || fake.lastReq.Messages[0].Content != testCategory.Description {
		t.Fatalf("expected single user message with category description, got %+v", fake.lastReq.Messages)
	}

	now = now.Add(59 * time.Minute)
	second, err := c.Prompts(context.Background(), testCategory, "mixtral-8x7b-32768")
	if err != nil {
		t.Fatalf("prompts#2: %v", err)
	}
	if fake.calls != 1 {
		t.Fatalf("expected 1 remote call within TTL, got %d", fake.calls)
	}
	for i := range first {
		if second[i] != first[i] {
			t.Fatalf("cached sequence changed: %v vs %v", first, second)
		}
	}
}

func TestMemoryRefetchesAfterExpiry(t *testing.T) {
	fake := &fakeCompleter{reply: "a\nb\nc"}
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	c := NewMemory(Config{TTL: time.Hour, Completer: fake, Now: func() time.Time { return now }, Metrics: testMetrics()})

	if _, err := c.Prompts(context.Background(), testCategory, "m"); err != nil {
		t.Fatalf("prompts#1: %v", err)
	}
	now = now.Add(61 * time.Minute)
	if _, err := c.Prompts(context.Background(), testCategory, "m"); err != nil {
		t.Fatalf("prompts#2: %v", err)
	}
	if fake.calls != 2 {
		t.Fatalf("expected refetch after expiry, got %d calls", fake.calls)
	}
}

func TestMemoryDoesNotCacheFailures(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("boom")}
	c := NewMemory(Config{TTL: time.Hour, Completer: fake, Now: time.Now, Metrics: testMetrics()})

	if _, err := c.Prompts(context.Background(), testCategory, "m"); err == nil {
		t.Fatalf("expected error from failing completer")
	}

	fake.err = nil
	fake.reply = "q1\nq2"
	prompts, err := c.Prompts(context.Background(), testCategory, "m")
	if err != nil {
		t.Fatalf("prompts after recovery: %v", err)
	}
	if fake.calls != 2 {
		t.Fatalf("expected retry after failure, got %d calls", fake.calls)
	}
	if len(prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %v", prompts)
	}
}

func TestSplitPrompts(t *testing.T) {
	got := splitPrompts("  one \n\n\ntwo\nthree\nfour")
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	if got := splitPrompts("   \n\n"); len(got) != 0 {
		t.Fatalf("expected no prompts from blank text, got %v", got)
	}
}

func TestFactoryRejectsUnknownDriver(t *testing.T) {
	if _, err := New(Config{Driver: "memcached", Completer: &fakeCompleter{}}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
	if _, err := New(Config{Driver: DriverRedis, Completer: &fakeCompleter{}}); err == nil {
		t.Fatalf("expected error for redis driver without client")
	}
}
