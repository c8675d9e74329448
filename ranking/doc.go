// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ranking implements the pairwise comparison engine.

# Overview

Every unique pair of items is shown to a single judge. The preferred item of
each pair earns one win, and the final ranking orders items by descending
win count.

	s := ranking.NewSession()
	if err := s.Start(items); err != nil {
		return err
	}
	for s.State() != ranking.StateComplete {
		pair, _ := s.Current()
		_ = s.Judge(pair.A.ID)
	}
	result, _ := s.Result()

# Building Blocks

  - GeneratePairs: all C(N,2) unordered pairs in input-position order
  - Shuffle: in-place Fisher-Yates over any slice
  - Presenter: per-pair random first/second slot assignment
  - Resolve: stable sort by descending score, rank = position + 1

# Session Lifecycle

Sessions move through three states: empty → in progress → complete

	Start(items) → first pair presented immediately
	Judge(id)    → score +1, next pair presented (no confirm step)
	Reset()      → back to empty, partial progress discarded

Judge always advances on success. A choice that is not a member of the
current pair returns an *InvalidChoiceError and leaves the score table and
queue untouched.

All Session methods are safe for concurrent use; judgments are serialised.
*/
package ranking
