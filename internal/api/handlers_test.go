package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"paperpal/internal/chat"
	"paperpal/internal/config"
	"paperpal/internal/llm"
	"paperpal/internal/session"
)

// recordingGateway counts calls and replays canned responses in order.
type recordingGateway struct {
	calls     [][]llm.Message
	responses []string
}

func (g *recordingGateway) Chat(_ context.Context, messages []llm.Message) (string, error) {
	i := len(g.calls)
	g.calls = append(g.calls, messages)
	if i < len(g.responses) {
		return g.responses[i], nil
	}
	return "stub answer", nil
}

func newTestServer(t *testing.T, gw chat.Gateway) *Server {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Load()
	cfg.MarkdownDir = filepath.Join(dir, "md")
	cfg.SectionsDir = filepath.Join(dir, "sections")

	factory := func(apiKey, model string) chat.Gateway { return gw }
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(session.NewStore(), factory, log, cfg)
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

const paperMarkdown = `# A Study Of Things

Authors: Somebody et al.

## Abstract

This paper studies things in depth.

## Introduction

Things are introduced here with plenty of body text.

## References

[1] Prior work.
`

func TestAsk_NoSessionRejectedBeforeGateway(t *testing.T) {
	gw := &recordingGateway{}
	srv := newTestServer(t, gw)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"what?"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body)
	}
	if len(gw.calls) != 0 {
		t.Errorf("gateway must not be invoked without a session, got %d calls", len(gw.calls))
	}
}

func TestAsk_MissingQuestionFailsValidation(t *testing.T) {
	gw := &recordingGateway{}
	srv := newTestServer(t, gw)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body)
	}
	if len(gw.calls) != 0 {
		t.Errorf("gateway must not be invoked for invalid requests")
	}
}

func TestSummarize_UnsupportedExtension(t *testing.T) {
	gw := &recordingGateway{}
	srv := newTestServer(t, gw)

	body, contentType := multipartUpload(t, "paper.exe", "binary junk")
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body)
	}
	if len(gw.calls) != 0 {
		t.Errorf("gateway must not be invoked for rejected uploads")
	}
}

func TestSummarizeThenAskFlow(t *testing.T) {
	gw := &recordingGateway{responses: []string{"the analysis report", "first answer", "second answer"}}
	srv := newTestServer(t, gw)

	// Upload.
	body, contentType := multipartUpload(t, "paper.md", paperMarkdown)
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("summarize: expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var sumResp SummarizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &sumResp); err != nil {
		t.Fatal(err)
	}
	if sumResp.Summary != "the analysis report" {
		t.Errorf("unexpected summary %q", sumResp.Summary)
	}
	if len(gw.calls) != 1 {
		t.Fatalf("expected 1 summary call, got %d", len(gw.calls))
	}
	// The summary prompt carries the paper text.
	if !strings.Contains(gw.calls[0][1].Content, "studies things in depth") {
		t.Errorf("summary prompt missing paper content")
	}
	// References never reach the model.
	if strings.Contains(gw.calls[0][1].Content, "Prior work") {
		t.Errorf("references leaked into the summary prompt")
	}

	// First question: full paper context goes out, history starts.
	askReq := func(question string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"`+question+`"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec
	}

	rec = askReq("what is studied?")
	if rec.Code != http.StatusOK {
		t.Fatalf("ask: expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var askResp AskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &askResp); err != nil {
		t.Fatal(err)
	}
	if askResp.Answer != "first answer" {
		t.Errorf("unexpected answer %q", askResp.Answer)
	}

	// Second question: history (2 messages) is replayed, paper is not
	// re-sent.
	rec = askReq("and the method?")
	if rec.Code != http.StatusOK {
		t.Fatalf("second ask: expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if len(gw.calls) != 3 {
		t.Fatalf("expected 3 gateway calls, got %d", len(gw.calls))
	}
	second := gw.calls[2]
	if len(second) != 4 { // system + user/assistant history + question
		t.Fatalf("expected 4 messages on follow-up, got %d", len(second))
	}
	if second[1].Content != "what is studied?" || second[2].Content != "first answer" {
		t.Errorf("history not replayed in order: %+v", second)
	}
	if strings.Contains(second[3].Content, "studies things in depth") {
		t.Errorf("paper context re-sent on follow-up")
	}
}

func TestSummarize_ResetsHistory(t *testing.T) {
	gw := &recordingGateway{}
	srv := newTestServer(t, gw)

	upload := func() {
		body, contentType := multipartUpload(t, "paper.md", paperMarkdown)
		req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("summarize: %d: %s", rec.Code, rec.Body)
		}
	}

	upload()

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"q1"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("ask: %d: %s", rec.Code, rec.Body)
	}

	// A new upload discards the conversation: the next question is a
	// first question again and carries the paper context.
	upload()

	req = httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"q2"}`))
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("ask after reset: %d: %s", rec.Code, rec.Body)
	}

	last := gw.calls[len(gw.calls)-1]
	if len(last) != 2 {
		t.Fatalf("expected fresh-session prompt shape, got %d messages", len(last))
	}
	if !strings.Contains(last[1].Content, "studies things in depth") {
		t.Errorf("fresh session must re-send paper context")
	}
}
