package exam

import "fmt"

// ParseError reports an inconsistent segmenter state. It never carries
// partial results: a failed document yields no questions at all.
type ParseError struct {
	Op  string
	Msg string
}

func (e *ParseError) Error() string { return fmt.Sprintf("exam parse: %s: %s", e.Op, e.Msg) }
