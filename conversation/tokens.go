package conversation

// EstimateTokens approximates a model token count as one token per four
// characters, rounded up. Coarse, but cheap and monotonic in text length,
// which is all the budget enforcement needs.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + 3) / 4
}

// TruncateToTokens cuts text so its estimate fits the budget.
func TruncateToTokens(text string, budget int) string {
	if budget <= 0 {
		return ""
	}
	limit := budget * 4
	if len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	out := string(runes)
	for len(out) > limit {
		runes = runes[:len(runes)-1]
		out = string(runes)
	}
	return out
}
