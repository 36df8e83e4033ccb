// Package orderstatus holds the closed vocabulary of order statuses.
//
// Any status may be replaced by any other; there is no transition table.
package orderstatus

import (
	"errors"
	"strings"
)

type Status int

const (
	Pending Status = iota + 1
	Shipped
	Completed
	Cancelled
	Declined
)

const undefined = "This status is undefined"

var ErrInvalidStatus = errors.New("status invalid")

var names = map[Status]string{
	Pending:   "Pending",
	Shipped:   "Shipped",
	Completed: "Completed",
	Cancelled: "Cancelled",
	Declined:  "Declined",
}

// All returns the statuses in declaration order.
func All() []Status {
	return []Status{Pending, Shipped, Completed, Cancelled, Declined}
}

// String returns the canonical display string, or a fixed "undefined" message
// for values outside the vocabulary.
func (s Status) String() string {
	if name, ok := names[s]; ok {
		return name
	}
	return undefined
}

func (s Status) IsValid() bool {
	_, ok := names[s]
	return ok
}

// Parse matches text case-insensitively against the canonical names.
func Parse(text string) (Status, error) {
	text = strings.TrimSpace(text)
	for _, s := range All() {
		if strings.EqualFold(names[s], text) {
			return s, nil
		}
	}
	return 0, ErrInvalidStatus
}

func Valid(text string) bool {
	_, err := Parse(text)
	return err == nil
}
