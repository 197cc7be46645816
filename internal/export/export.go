package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/songyh0828/groqify-chatbot/internal/chat"
	"github.com/songyh0828/groqify-chatbot/internal/groq"
)

// ToJSON renders the transcript as an indented JSON array, fields verbatim.
func ToJSON(messages []chat.Message) ([]byte, error) {
	if messages == nil {
		messages = []chat.Message{}
	}
	b, err := json.MarshalIndent(messages, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}
	return b, nil
}

// ToText renders one "<Role>: <content>" line per message, no timestamps.
func ToText(messages []chat.Message) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, capitalize(m.Role)+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}

func roleLabel(role string) string {
	if role == groq.RoleUser {
		return "User"
	}
	return "Groqify"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
