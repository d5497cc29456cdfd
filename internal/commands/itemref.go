package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ItemRef identifies an item within a list.
type ItemRef struct {
	ListID int
	ItemID int
}

// Errors returned by the reference parsers.
var (
	ErrItemRefRequired = errors.New("item reference required")
	ErrListIDRequired  = errors.New("list id required")
)

// ParseItemRef parses an item reference from the front of args and returns
// the arguments that follow it.
//
// Accepted forms:
//  1. "<list-id>/<item-id>" as one argument (e.g. 3/12)
//  2. "<list-id> <item-id>" as two arguments
//
// Both ids must be positive integers.
func ParseItemRef(args []string) (ItemRef, []string, error) {
	if len(args) == 0 {
		return ItemRef{}, nil, ErrItemRefRequired
	}

	first := args[0]
	if listPart, itemPart, ok := strings.Cut(first, "/"); ok {
		listID, err := parseID(listPart)
		if err != nil {
			return ItemRef{}, nil, fmt.Errorf("invalid item reference: %s", first)
		}
		itemID, err := parseID(itemPart)
		if err != nil {
			return ItemRef{}, nil, fmt.Errorf("invalid item reference: %s", first)
		}
		return ItemRef{ListID: listID, ItemID: itemID}, args[1:], nil
	}

	listID, err := parseID(first)
	if err != nil {
		return ItemRef{}, nil, fmt.Errorf("invalid item reference: %s", first)
	}
	if len(args) < 2 {
		return ItemRef{}, nil, ErrItemRefRequired
	}
	itemID, err := parseID(args[1])
	if err != nil {
		return ItemRef{}, nil, fmt.Errorf("invalid item reference: %s %s", first, args[1])
	}
	return ItemRef{ListID: listID, ItemID: itemID}, args[2:], nil
}

// ParseListID parses a list id from the front of args and returns the
// arguments that follow it.
func ParseListID(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 0, nil, ErrListIDRequired
	}
	id, err := parseID(args[0])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid list id: %s", args[0])
	}
	return id, args[1:], nil
}

// parseID parses a positive decimal id.
func parseID(s string) (int, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("out of range: %d", n)
	}
	return n, nil
}

// joinTitle joins args into a title, returning "" for whitespace-only input.
func joinTitle(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
