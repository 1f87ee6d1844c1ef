// Package overload picks the best callable for a list of arguments.
//
// Resolution is generic over signatures.Signature so one routine serves
// intrinsic functions, user functions, object and class methods, and
// technique entry points.
package overload

import (
	"slices"

	"hlsltools/internal/signatures"
	"hlsltools/internal/symbols"
)

// Candidate is a signature that accepts the arguments, with its score.
// Lower scores are better.
type Candidate[S signatures.Signature] struct {
	Signature S
	Score     uint64
}

// Result holds the applicable candidates in rank order.
type Result[S signatures.Signature] struct {
	candidates []Candidate[S]
}

// Candidates returns every applicable candidate, best first; ties keep the
// input order.
func (r Result[S]) Candidates() []Candidate[S] { return r.candidates }

// Selected returns the top-ranked candidate even when the call is ambiguous.
func (r Result[S]) Selected() (S, bool) {
	if len(r.candidates) == 0 {
		var zero S
		return zero, false
	}
	return r.candidates[0].Signature, true
}

// Best returns the unique best candidate. It reports false when there is no
// candidate or when the lowest score is shared.
func (r Result[S]) Best() (S, bool) {
	if len(r.candidates) == 0 || r.Ambiguous() {
		var zero S
		return zero, false
	}
	return r.candidates[0].Signature, true
}

// Ambiguous reports whether two or more candidates share the lowest score.
func (r Result[S]) Ambiguous() bool {
	return len(r.candidates) > 1 && r.candidates[0].Score == r.candidates[1].Score
}

// Perform ranks sigs against args. With MaxArguments or more arguments
// scores cannot be represented and the result is empty.
func Perform[S signatures.Signature](types symbols.Lookup, sigs []S, args []signatures.Argument) Result[S] {
	if len(args) >= signatures.MaxArguments {
		return Result[S]{}
	}

	candidates := make([]Candidate[S], 0, len(sigs))
	for _, sig := range sigs {
		score, ok := scoreOf(types, sig, args)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate[S]{Signature: sig, Score: score})
	}

	slices.SortStableFunc(candidates, func(a, b Candidate[S]) int {
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		}
		return 0
	})
	return Result[S]{candidates: candidates}
}

func scoreOf[S signatures.Signature](types symbols.Lookup, sig S, args []signatures.Argument) (uint64, bool) {
	n := sig.ParameterCount()
	if sig.HasVariadicParameter() {
		if len(args) < n {
			return 0, false
		}
	} else if len(args) != n {
		return 0, false
	}

	var score uint64
	for i := range n {
		c := signatures.Classify(types, args[i], sig.ParameterType(i), sig.ParameterDirection(i))
		if !c.Exists {
			return 0, false
		}
		score += uint64(c.Type)
	}
	return score, true
}
