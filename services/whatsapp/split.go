package whatsapp

// MaxMessageLength is the transport's per-message character bound.
const MaxMessageLength = 900

// SplitMessage cuts a reply into chunks of at most limit characters, breaking
// at the newline nearest before the bound when one exists and hard-cutting
// otherwise. Chunks preserve order; the separator newline is dropped.
func SplitMessage(body string, limit int) []string {
	if limit <= 0 {
		return []string{body}
	}

	runes := []rune(body)
	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit; i > 0; i-- {
			if runes[i-1] == '\n' {
				cut = i - 1
				break
			}
		}
		if cut == 0 {
			cut = limit
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
		// Drop the separator newline the chunk broke on.
		if len(runes) > 0 && runes[0] == '\n' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	if chunks == nil {
		chunks = []string{""}
	}
	return chunks
}
