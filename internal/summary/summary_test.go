package summary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"paperpal/internal/llm"
)

type stubGateway struct {
	calls [][]llm.Message
	resp  string
	err   error
}

func (s *stubGateway) Chat(_ context.Context, messages []llm.Message) (string, error) {
	s.calls = append(s.calls, messages)
	return s.resp, s.err
}

func TestGenerate_ComposesAllSections(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "abstract.txt"),
		filepath.Join(dir, "introduction.txt"),
	}
	os.WriteFile(paths[0], []byte("the abstract"), 0o644)
	os.WriteFile(paths[1], []byte("the introduction"), 0o644)

	gw := &stubGateway{resp: "report"}
	got, err := Generate(context.Background(), gw, paths)
	if err != nil {
		t.Fatal(err)
	}
	if got != "report" {
		t.Errorf("expected report, got %q", got)
	}

	if len(gw.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(gw.calls))
	}
	msgs := gw.calls[0]
	if len(msgs) != 2 || msgs[0].Role != llm.RoleSystem {
		t.Fatalf("unexpected message shape: %+v", msgs)
	}
	for _, want := range []string{"the abstract", "the introduction", "Critical Analysis"} {
		if !strings.Contains(msgs[1].Content, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerate_GatewayErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.txt")
	os.WriteFile(path, []byte("x"), 0o644)

	boom := errors.New("down")
	gw := &stubGateway{err: boom}
	_, err := Generate(context.Background(), gw, []string{path})
	if !errors.Is(err, boom) {
		t.Fatalf("expected propagated gateway error, got %v", err)
	}
}

func TestGenerate_MissingFileFailsBeforeGateway(t *testing.T) {
	gw := &stubGateway{}
	_, err := Generate(context.Background(), gw, []string{filepath.Join(t.TempDir(), "nope.txt")})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(gw.calls) != 0 {
		t.Errorf("gateway must not be called, got %d calls", len(gw.calls))
	}
}
