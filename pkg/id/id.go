// Package id provides id generation
package id

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultSize is the length of the ids returned by New.
const DefaultSize = 16

// New generates a random url friendly id of DefaultSize.
func New() string { return gonanoid.Must(DefaultSize) }

// NewSize generates a random url friendly id of size.
func NewSize(size int) (string, error) { return gonanoid.New(size) }
