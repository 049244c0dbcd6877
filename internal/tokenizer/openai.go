package tokenizer

import (
	"errors"

	"github.com/pkoukk/tiktoken-go"
)

type openAICounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter openAICounter) Name() string {
	return counter.name
}

// CountString encodes input as ordinary text so that special token markers
// appearing in source files are counted like any other characters.
func (counter openAICounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	return len(counter.encoding.EncodeOrdinary(input)), nil
}
