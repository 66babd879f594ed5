package chat

// formatHistory maps the caller-supplied history into the provider message
// schema and prepends exactly one system message carrying the persona and
// retrieved context. User and system roles pass through unchanged; any
// other role maps to assistant. Repeated roles are not merged.
func formatHistory(system string, history []Message) []Message {
	out := make([]Message, 0, len(history)+1)
	out = append(out, Message{Role: RoleSystem, Content: system})
	for _, m := range history {
		role := m.Role
		if role != RoleUser && role != RoleSystem {
			role = RoleAssistant
		}
		out = append(out, Message{Role: role, Content: m.Content})
	}
	return out
}

// lastUserContent returns the content of the most recent user-authored
// message. A trailing assistant message (for example a caller echoing a
// previous answer) must not drive retrieval, so the scan walks backwards
// for the user role and only falls back to the final entry when the
// history contains no user message at all.
func lastUserContent(history []Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleUser {
			return history[i].Content
		}
	}
	if len(history) == 0 {
		return ""
	}
	return history[len(history)-1].Content
}
