// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientItems = errors.New("insufficient items")
	ErrInvalidChoice     = errors.New("invalid choice")
	ErrDuplicateItem     = errors.New("duplicate item id")
	ErrNotComplete       = errors.New("session not complete")
)

// InsufficientItemsError is returned when a session cannot be started
// because fewer than two items (or zero pairs) are available.
type InsufficientItemsError struct {
	Count int
	Pairs int
}

func (e *InsufficientItemsError) Error() string {
	if e.Count >= 2 {
		return fmt.Sprintf("insufficient items: %d items produced %d pairs", e.Count, e.Pairs)
	}
	return fmt.Sprintf("insufficient items: need at least 2, got %d", e.Count)
}

func (e *InsufficientItemsError) Unwrap() error { return ErrInsufficientItems }

// InvalidChoiceError is returned by Judge when the chosen ID is not a
// member of the current pair, or when no pair is being shown.
type InvalidChoiceError struct {
	ID     ItemID
	Reason string
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("invalid choice %s: %s", e.ID, e.Reason)
}

func (e *InvalidChoiceError) Unwrap() error { return ErrInvalidChoice }
