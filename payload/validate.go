package payload

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCount is returned by Validate when a sequence has the wrong length.
	ErrCount = errors.New("payload: wrong number of values")
	// ErrRange is returned by Validate when a value is outside [Min, Max].
	ErrRange = errors.New("payload: value out of range")
	// ErrOrder is returned by Validate when a sorted sequence is not ascending.
	ErrOrder = errors.New("payload: sequence is not ascending")
	// ErrMismatch is returned by Validate when the sorted forms do not match Unsorted.
	ErrMismatch = errors.New("payload: sorted values do not match unsorted values")
	// ErrTimestamp is returned by Validate when Timestamp is not in TimeLayout.
	ErrTimestamp = errors.New("payload: malformed timestamp")
)

// Validate reports the first broken invariant of p, or nil.
func (p *Payload) Validate() error {
	var (
		unsorted = p.Data.Unsorted
		raw      = p.Data.Sorted.Raw
		unique   = p.Data.Sorted.Unique
	)

	if len(unsorted) != Count {
		return fmt.Errorf("%w: unsorted has %d, want %d", ErrCount, len(unsorted), Count)
	}
	if len(raw) != len(unsorted) {
		return fmt.Errorf("%w: raw has %d, want %d", ErrCount, len(raw), len(unsorted))
	}
	if len(unique) < 1 || len(unique) > len(raw) {
		return fmt.Errorf("%w: unique has %d, want 1..%d", ErrCount, len(unique), len(raw))
	}

	counts := make(map[int]int, len(unsorted))
	for _, v := range unsorted {
		if v < Min || v > Max {
			return fmt.Errorf("%w: %d", ErrRange, v)
		}
		counts[v]++
	}

	for i, v := range raw {
		if i > 0 && v < raw[i-1] {
			return fmt.Errorf("%w: raw[%d]=%d < raw[%d]=%d", ErrOrder, i, v, i-1, raw[i-1])
		}
		counts[v]--
	}
	for v, n := range counts {
		if n != 0 {
			return fmt.Errorf("%w: value %d", ErrMismatch, v)
		}
	}

	for i, v := range unique {
		if i > 0 && v <= unique[i-1] {
			return fmt.Errorf("%w: unique[%d]=%d <= unique[%d]=%d", ErrOrder, i, v, i-1, unique[i-1])
		}
		if _, ok := counts[v]; !ok {
			return fmt.Errorf("%w: unique value %d not drawn", ErrMismatch, v)
		}
	}
	if len(unique) != len(counts) {
		return fmt.Errorf("%w: %d unique values, %d distinct drawn", ErrMismatch, len(unique), len(counts))
	}

	if _, err := time.Parse(TimeLayout, p.Timestamp); err != nil {
		return fmt.Errorf("%w: %q", ErrTimestamp, p.Timestamp)
	}

	return nil
}
