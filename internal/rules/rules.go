// Package rules evaluates ordered predicate lists where the first match wins.
//
// Every heuristic in the pipeline (list markers, heading detection, component
// suggestions, readability bands) is expressed as a []Rule so its precedence
// reads top to bottom and each rule can be tested by name.
package rules

// Rule maps an input to a result when Match holds.
type Rule[In, Out any] struct {
	Name  string
	Match func(In) bool
	Then  Out
}

// First returns the result of the first matching rule.
// ok is false when no rule matched.
func First[In, Out any](rs []Rule[In, Out], in In) (out Out, ok bool) {
	for _, r := range rs {
		if r.Match(in) {
			return r.Then, true
		}
	}
	return out, false
}

// FirstName returns the name of the first matching rule, or "".
func FirstName[In, Out any](rs []Rule[In, Out], in In) string {
	for _, r := range rs {
		if r.Match(in) {
			return r.Name
		}
	}
	return ""
}

// Any reports whether any predicate holds for in.
func Any[In any](in In, preds ...func(In) bool) bool {
	for _, p := range preds {
		if p(in) {
			return true
		}
	}
	return false
}
