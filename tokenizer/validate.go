package tokenizer

// ValidationResult reports structural problems found by Validate
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validate checks quote and parenthesis balance in a single linear scan,
// independently of tokenization. The scan is char-for-char with no escape
// awareness: a quote opens at the first quote character and closes at the
// next occurrence of the same character, and parentheses inside quotes are
// ignored. Operator syntax is not checked here; the parser absorbs
// malformed operators on its own.
func Validate(input string) ValidationResult {
	var quote byte

	depth := 0

	var errs []string

	for i := 0; i < len(input); i++ {
		ch := input[i]

		if quote != 0 {
			if ch == quote {
				quote = 0
			}

			continue
		}

		switch ch {
		case '"', '\'':
			quote = ch
		case '(':
			depth++
		case ')':
			if depth == 0 {
				errs = append(errs, "unmatched )")
			} else {
				depth--
			}
		}
	}

	if quote != 0 {
		errs = append(errs, "unmatched quote: "+string(quote))
	}

	if depth > 0 {
		errs = append(errs, "unmatched (")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
