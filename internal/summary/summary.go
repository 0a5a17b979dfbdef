// Package summary produces the one-shot structured analysis of an uploaded
// paper from its persisted section files.
package summary

import (
	"context"
	"fmt"
	"os"
	"strings"

	"paperpal/internal/llm"
)

// Gateway matches chat.Gateway; declared here so the package stands alone.
type Gateway interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
}

// Generate reads every section file, composes them into one document and
// requests a single structured analysis. Stateless; no history interaction.
func Generate(ctx context.Context, gw Gateway, sectionPaths []string) (string, error) {
	texts := make([]string, 0, len(sectionPaths))
	for _, p := range sectionPaths {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("read section %s: %w", p, err)
		}
		texts = append(texts, string(data))
	}
	combined := strings.Join(texts, "\n\n---\n\n")

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: analystSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("%s\n\nPaper content:\n%s", analysisPrompt, combined)},
	}
	return gw.Chat(ctx, messages)
}
