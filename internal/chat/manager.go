// Package chat owns per-session conversation state: building prompts for
// new questions and compressing history once it grows past the threshold.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"paperpal/internal/llm"
)

// Gateway is the one model capability the manager needs: send role-tagged
// messages, get text back.
type Gateway interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
}

// History is the ordered message sequence of one session. It grows by
// exactly two messages per answered question, or collapses to a single
// summary message when compression triggers.
type History []llm.Message

// DefaultThreshold is the message count (not turn count) above which
// history is compressed before answering: three question/answer pairs.
const DefaultThreshold = 6

// Manager answers questions against a paper's section files, carrying the
// conversation history forward.
type Manager struct {
	gw        Gateway
	threshold int
	log       *slog.Logger
}

func NewManager(gw Gateway, threshold int, log *slog.Logger) *Manager {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if log == nil {
		log = slog.Default()
	}
	return &Manager{gw: gw, threshold: threshold, log: log}
}

// Answer produces the model's answer to question and the new history the
// caller should commit. The input history is never mutated, and on any
// error the returned history is nil: committing it only on success is what
// keeps a failed call from touching session state.
//
// When the history exceeds the threshold it is first compressed into a
// single system message; the original messages are discarded once the
// summary exists. A fresh (or freshly compressed-to-empty) history sends
// the full section text with the question; otherwise only the question is
// sent and the history is assumed to carry the paper context forward.
func (m *Manager) Answer(ctx context.Context, history History, question string, sectionPaths []string) (string, History, error) {
	working := make(History, 0, len(history)+2)

	if len(history) > m.threshold {
		m.log.Info("compressing conversation history", "messages", len(history))
		summary, err := m.compress(ctx, history)
		if err != nil {
			return "", nil, fmt.Errorf("compress history: %w", err)
		}
		working = append(working, llm.Message{
			Role:    llm.RoleSystem,
			Content: summaryPrefix + summary,
		})
	} else {
		working = append(working, history...)
	}

	var messages []llm.Message
	if len(working) == 0 {
		paperText, err := readSections(sectionPaths)
		if err != nil {
			return "", nil, err
		}
		messages = []llm.Message{
			{Role: llm.RoleSystem, Content: answerSystemPrompt},
			{Role: llm.RoleUser, Content: fmt.Sprintf("Paper context:\n%s\n\n---\nQuestion:\n%s", paperText, question)},
		}
	} else {
		messages = make([]llm.Message, 0, len(working)+2)
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: answerSystemPrompt})
		messages = append(messages, working...)
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})
	}

	answer, err := m.gw.Chat(ctx, messages)
	if err != nil {
		return "", nil, err
	}

	working = append(working,
		llm.Message{Role: llm.RoleUser, Content: question},
		llm.Message{Role: llm.RoleAssistant, Content: answer},
	)
	return answer, working, nil
}

// compress serializes the whole history as "role: content" lines and asks
// the model for a terse summary that keeps every key fact. The output is
// returned verbatim; the model is trusted to be concise.
func (m *Manager) compress(ctx context.Context, history History) (string, error) {
	var sb strings.Builder
	for _, msg := range history {
		sb.WriteString(msg.Role)
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: compressSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Compress the following conversation history into a summary:\n\n---\n%s---", sb.String())},
	}
	return m.gw.Chat(ctx, messages)
}

// readSections concatenates the section files with a separator.
func readSections(paths []string) (string, error) {
	texts := make([]string, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("read section %s: %w", p, err)
		}
		texts = append(texts, string(data))
	}
	return strings.Join(texts, "\n\n---\n\n"), nil
}
