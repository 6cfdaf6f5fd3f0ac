// Package payload builds the random dataset served by datagen.
//
// A payload is 15 random integers drawn from [1, 30], the same integers in
// ascending order, the distinct values of that ordering, and the UTC instant
// it was built at:
//
//	p := payload.Build()
//	fmt.Println(p.Data.Sorted.Unique)
package payload

import (
	"math/rand"
	"sort"
	"sync"
	"time"
)

const (
	// Count is the number of integers in Data.Unsorted.
	Count = 15
	// Min is the smallest value that can be drawn.
	Min = 1
	// Max is the largest value that can be drawn.
	Max = 30
	// TimeLayout is the layout of Payload.Timestamp.
	TimeLayout = "2006-01-02 15:04:05 UTC"
)

// Payload is the generated dataset, the field order is the order of keys in its JSON form.
type Payload struct {
	Data      Data   `json:"data" yaml:"data" msgpack:"data"`
	Timestamp string `json:"timestamp" yaml:"timestamp" msgpack:"timestamp" jsonschema:"pattern=^\\d{4}-\\d{2}-\\d{2} \\d{2}:\\d{2}:\\d{2} UTC$"`
}

// Data holds the random integers and their sorted forms.
type Data struct {
	Unsorted []int  `json:"unsorted" yaml:"unsorted" msgpack:"unsorted" jsonschema:"minItems=15,maxItems=15"`
	Sorted   Sorted `json:"sorted" yaml:"sorted" msgpack:"sorted"`
}

// Sorted holds Unsorted in ascending order, with and without duplicates.
type Sorted struct {
	Raw    []int `json:"raw" yaml:"raw" msgpack:"raw" jsonschema:"minItems=15,maxItems=15"`
	Unique []int `json:"unique" yaml:"unique" msgpack:"unique" jsonschema:"minItems=1,maxItems=15"`
}

// Option configures a Builder.
type Option func(*Builder)

// WithRand makes the Builder draw integers from r.
func WithRand(r *rand.Rand) Option {
	return func(b *Builder) { b.rand = r }
}

// WithClock makes the Builder read the current time from now.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// Builder builds payloads. It is safe for concurrent use.
type Builder struct {
	mu   sync.Mutex
	rand *rand.Rand
	now  func() time.Time
}

// NewBuilder returns a Builder, by default it uses the global random source and time.Now.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{now: time.Now}
	for _, o := range opts {
		o(b)
	}
	return b
}

var defaultBuilder = NewBuilder()

// Build builds a payload with the default Builder.
func Build() *Payload { return defaultBuilder.Build() }

// Build generates Count integers, sorts them, dedupes the sorted sequence and
// stamps the result with the current UTC time.
func (b *Builder) Build() *Payload {
	unsorted := b.draw()

	raw := make([]int, len(unsorted))
	copy(raw, unsorted)
	sort.SliceStable(raw, func(i, j int) bool { return raw[i] < raw[j] })

	return &Payload{
		Data: Data{
			Unsorted: unsorted,
			Sorted: Sorted{
				Raw:    raw,
				Unique: DedupeSorted(raw),
			},
		},
		Timestamp: b.now().UTC().Format(TimeLayout),
	}
}

func (b *Builder) draw() []int {
	values := make([]int, Count)

	// *rand.Rand is not goroutine safe, the package level functions are.
	if b.rand != nil {
		b.mu.Lock()
		defer b.mu.Unlock()
	}
	for i := range values {
		values[i] = Min + b.intn(Max-Min+1)
	}
	return values
}

func (b *Builder) intn(n int) int {
	if b.rand == nil {
		return rand.Intn(n)
	}
	return b.rand.Intn(n)
}

// DedupeSorted returns the distinct values of sorted in one pass.
// sorted must be in non-decreasing order.
func DedupeSorted(sorted []int) []int {
	unique := make([]int, 0, len(sorted))
	for i, v := range sorted {
		if i == 0 || v != unique[len(unique)-1] {
			unique = append(unique, v)
		}
	}
	return unique
}
