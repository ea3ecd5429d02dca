package token

import (
	"strings"
	"testing"
	"time"
)

// wordTokenizer splits each line on spaces, never changing state.
type wordTokenizer struct{}

func (wordTokenizer) InitialState() State { return "default" }

func (wordTokenizer) TokenizeLine(line string, startState State) ([]Token, State) {
	var tokens []Token
	col := 1
	for _, word := range strings.Fields(line) {
		idx := strings.Index(line[col-1:], word)
		tokens = append(tokens, Token{StartColumn: col + idx, Type: "word"})
		col += idx + len(word)
	}
	return tokens, startState
}

func newLines(lines []string) LineReader {
	return func(line int) (string, error) {
		if line < 1 || line > len(lines) {
			return "", ErrLineOutOfRange
		}
		return lines[line-1], nil
	}
}

func TestGetTokensReturnsPlaceholderWithoutTokenizing(t *testing.T) {
	lines := []string{"foo bar", "baz"}
	s := NewStore(wordTokenizer{}, newLines(lines), len(lines), 0)
	if s.IsCheapToTokenize(2) {
		t.Fatalf("expected line 2 not yet tokenized")
	}
	toks, err := s.GetTokens(2)
	if err != nil {
		t.Fatalf("GetTokens error: %v", err)
	}
	if len(toks) != 1 || toks[0].StartColumn != 1 || toks[0].Type != PlaceholderTokenType {
		t.Errorf("tokens = %+v, want single placeholder token", toks)
	}
	if s.IsCheapToTokenize(2) {
		t.Errorf("GetTokens must not tokenize line 2, only the background scheduler should")
	}

	s.UpdateTokensUntilLine(2)
	toks, err = s.GetTokens(2)
	if err != nil {
		t.Fatalf("GetTokens error: %v", err)
	}
	if len(toks) != 1 || toks[0].Type != "word" {
		t.Errorf("tokens after UpdateTokensUntilLine = %+v", toks)
	}
}

func TestApplyEditInvalidatesFromTouchedLine(t *testing.T) {
	lines := []string{"a", "b", "c"}
	s := NewStore(wordTokenizer{}, newLines(lines), len(lines), 0)
	s.WarmUp(10)
	if s.HasLinesToTokenize() {
		t.Fatalf("expected nothing left after warm-up")
	}
	s.ApplyEdit(2, 2, 1)
	if !s.HasLinesToTokenize() {
		t.Fatalf("expected line 2 invalidated")
	}
	if !s.IsCheapToTokenize(1) {
		t.Errorf("line 1 should remain valid")
	}
}

func TestTooLargeGuard(t *testing.T) {
	s := NewStore(wordTokenizer{}, newLines([]string{"x"}), 1, DefaultTooLargeByteSize+1)
	if !s.TooLarge() {
		t.Fatalf("expected TooLarge")
	}
	toks, err := s.GetTokens(1)
	if err != nil {
		t.Fatalf("GetTokens error: %v", err)
	}
	if len(toks) != 1 || toks[0].Type != PlaceholderTokenType {
		t.Errorf("tokens = %+v, want placeholder", toks)
	}
	if s.HasLinesToTokenize() {
		t.Errorf("too-large store must never report work to do")
	}
}

func TestSchedulerDrainsBacklog(t *testing.T) {
	lines := make([]string, 500)
	for i := range lines {
		lines[i] = "x y z"
	}
	s := NewStore(wordTokenizer{}, newLines(lines), len(lines), 0)
	done := make(chan struct{})
	sched := NewScheduler(s, time.Millisecond, func() {
		if !s.HasLinesToTokenize() {
			select {
			case <-done:
			default:
				close(done)
			}
		}
	})
	sched.Schedule()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("scheduler did not drain backlog in time")
	}
	sched.Stop()
}
