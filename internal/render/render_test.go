package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/storefront/storechat/internal/config"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Width != 80 {
		t.Errorf("expected Width=80, got %d", opts.Width)
	}
	if opts.Style != StyleDark {
		t.Errorf("expected Style='dark', got %s", opts.Style)
	}
	if !opts.EnableEmoji {
		t.Error("expected EnableEmoji=true")
	}
	if !opts.PreserveNewLines {
		t.Error("expected PreserveNewLines=true")
	}
	if opts.Compact {
		t.Error("expected Compact=false")
	}
}

func TestOptionsChaining(t *testing.T) {
	opts := DefaultOptions().
		WithWidth(100).
		WithStyle(StyleLight).
		WithEmoji(false).
		WithPreserveNewLines(false).
		WithCompact(true)

	if opts.Width != 100 {
		t.Errorf("expected Width=100, got %d", opts.Width)
	}
	if opts.Style != StyleLight {
		t.Errorf("expected Style='light', got %s", opts.Style)
	}
	if opts.EnableEmoji {
		t.Error("expected EnableEmoji=false")
	}
	if opts.PreserveNewLines {
		t.Error("expected PreserveNewLines=false")
	}
	if !opts.Compact {
		t.Error("expected Compact=true")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv(StyleEnvVar, "")

	opts := OptionsFromConfig(config.MarkdownConfig{Style: StyleNoTTY, EnableEmoji: false, PreserveNewLines: true})

	if opts.Style != StyleNoTTY {
		t.Errorf("expected Style='notty', got %s", opts.Style)
	}
	if opts.EnableEmoji {
		t.Error("expected EnableEmoji=false")
	}
	if opts.Width != 80 {
		t.Errorf("expected default width 80, got %d", opts.Width)
	}
}

func TestOptionsFromConfig_EmptyStyleKeepsDefault(t *testing.T) {
	t.Setenv(StyleEnvVar, "")

	opts := OptionsFromConfig(config.MarkdownConfig{})
	if opts.Style != StyleDark {
		t.Errorf("expected Style='dark', got %s", opts.Style)
	}
}

func TestOptionsFromConfig_EnvOverride(t *testing.T) {
	t.Setenv(StyleEnvVar, StyleLight)

	opts := OptionsFromConfig(config.DefaultMarkdownConfig())
	if opts.Style != StyleLight {
		t.Errorf("expected Style='light' from env, got %s", opts.Style)
	}
}

func TestMarkdown(t *testing.T) {
	ClearCache()
	defer ClearCache()

	out, err := Markdown("# Order status\n\nYour order **shipped**.", DefaultOptions().WithStyle(StyleNoTTY))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Order status") {
		t.Errorf("heading missing from output: %q", out)
	}
	if !strings.Contains(out, "shipped") {
		t.Errorf("body missing from output: %q", out)
	}
}

func TestMarkdown_UnknownStylePath(t *testing.T) {
	ClearCache()
	defer ClearCache()

	if _, err := Markdown("hi", DefaultOptions().WithStyle("/no/such/style.json")); err == nil {
		t.Error("expected error for missing style file")
	}
}

func TestMessage_FallsBackToRaw(t *testing.T) {
	ClearCache()
	defer ClearCache()

	got := Message("plain *text*", DefaultOptions().WithStyle("/no/such/style.json"))
	if got != "plain *text*" {
		t.Errorf("expected raw content on failure, got %q", got)
	}
}

func TestMessage_TrimsBlankLines(t *testing.T) {
	ClearCache()
	defer ClearCache()

	got := Message("42", DefaultOptions().WithStyle(StyleASCII).WithCompact(true))
	if strings.HasPrefix(got, "\n") || strings.HasSuffix(got, "\n") {
		t.Errorf("expected trimmed output, got %q", got)
	}
	if !strings.Contains(got, "42") {
		t.Errorf("expected content in output, got %q", got)
	}
}

func TestCacheKey(t *testing.T) {
	base := DefaultOptions()

	if cacheKey(base) == cacheKey(base.WithWidth(100)) {
		t.Error("Different widths should produce different keys")
	}
	if cacheKey(base) == cacheKey(base.WithStyle(StyleLight)) {
		t.Error("Different styles should produce different keys")
	}
	if cacheKey(base) == cacheKey(base.WithCompact(true)) {
		t.Error("Compact should change the key")
	}
	if cacheKey(base) != cacheKey(DefaultOptions()) {
		t.Error("Same options should produce same key")
	}
}

func TestPool_ReusesConfiguration(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions().WithStyle(StyleNoTTY)
	for i := 0; i < 3; i++ {
		if _, err := Markdown("x", opts); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if CacheSize() != 1 {
		t.Errorf("expected pool count 1, got %d", CacheSize())
	}

	if _, err := Markdown("x", opts.WithWidth(40)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if CacheSize() != 2 {
		t.Errorf("expected pool count 2, got %d", CacheSize())
	}
}

func TestMarkdown_Concurrent(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions().WithStyle(StyleNoTTY)
	var wg sync.WaitGroup
	errs := make(chan error, 20)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Markdown("**bold** reply", opts); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent render failed: %v", err)
	}
}
