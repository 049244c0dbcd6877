package tokenizer

import (
	"errors"
	"unicode/utf8"
)

// CountResult captures the outcome of counting a text block.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountText estimates tokens for content using counter.
// Content that is not valid UTF-8 is reported as not counted.
func CountText(counter Counter, content string) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New("nil tokenizer counter")
	}
	if !utf8.ValidString(content) {
		return CountResult{Counted: false}, nil
	}
	tokens, err := counter.CountString(content)
	if err != nil {
		return CountResult{}, err
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}
