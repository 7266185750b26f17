package lessonchat

import (
	"strings"

	"github.com/abhisek/edudesign/internal/llm"
)

// replay converts history plus newMessage into alternating provider turns
// that start and end with the user.
//
// Unknown roles and blank turns are skipped, a leading greeting is dropped,
// consecutive turns by the same role are merged, and a trailing user turn
// equal to newMessage is treated as already appended by the caller.
func replay(history []Message, newMessage string, maxTurns int) []llm.Message {
	turns := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		var role llm.Role
		switch m.Role {
		case RoleUser:
			role = llm.RoleUser
		case RoleAssistant:
			role = llm.RoleAssistant
		default:
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		turns = append(turns, llm.Message{Role: role, Content: m.Content})
	}

	if n := len(turns); n > 0 && turns[n-1].Role == llm.RoleUser &&
		strings.TrimSpace(turns[n-1].Content) == strings.TrimSpace(newMessage) {
		turns = turns[:n-1]
	}

	turns = merge(turns)
	if maxTurns > 0 && len(turns) > maxTurns {
		turns = turns[len(turns)-maxTurns:]
	}
	for len(turns) > 0 && turns[0].Role == llm.RoleAssistant {
		turns = turns[1:]
	}

	return merge(append(turns, llm.Message{Role: llm.RoleUser, Content: newMessage}))
}

func merge(turns []llm.Message) []llm.Message {
	out := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		if n := len(out); n > 0 && out[n-1].Role == t.Role {
			out[n-1].Content += "\n\n" + t.Content
			continue
		}
		out = append(out, t)
	}
	return out
}
