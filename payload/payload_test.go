package payload

import (
	"math/rand"
	"regexp"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} UTC$`)

// constSource always yields the same value, so every draw is Min.
type constSource int64

func (s constSource) Int63() int64 { return int64(s) }
func (constSource) Seed(int64)     {}

func TestBuild(t *testing.T) {
	for i := 0; i < 200; i++ {
		p := Build()

		assert.Len(t, p.Data.Unsorted, Count)
		for _, v := range p.Data.Unsorted {
			assert.GreaterOrEqual(t, v, Min)
			assert.LessOrEqual(t, v, Max)
		}

		want := append([]int(nil), p.Data.Unsorted...)
		sort.Ints(want)
		assert.Equal(t, want, p.Data.Sorted.Raw)

		unique := p.Data.Sorted.Unique
		assert.GreaterOrEqual(t, len(unique), 1)
		assert.LessOrEqual(t, len(unique), Count)
		assert.True(t, sort.IntsAreSorted(unique))

		set := make(map[int]struct{})
		for _, v := range unique {
			set[v] = struct{}{}
		}
		assert.Len(t, set, len(unique))
		for _, v := range p.Data.Sorted.Raw {
			assert.Contains(t, set, v)
		}

		assert.Regexp(t, timestampPattern, p.Timestamp)
		require.NoError(t, p.Validate())
	}
}

func TestBuildDoesNotAliasUnsorted(t *testing.T) {
	p := NewBuilder(WithRand(rand.New(rand.NewSource(7)))).Build()

	p.Data.Sorted.Raw[0] = -1
	assert.NotContains(t, p.Data.Unsorted, -1)
}

func TestBuildAllEqual(t *testing.T) {
	b := NewBuilder(WithRand(rand.New(constSource(0))))
	p := b.Build()

	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, p.Data.Unsorted)
	assert.Equal(t, p.Data.Unsorted, p.Data.Sorted.Raw)
	assert.Equal(t, []int{1}, p.Data.Sorted.Unique)
	assert.NoError(t, p.Validate())
}

func TestBuildClock(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	now := time.Date(2024, 3, 25, 7, 0, 9, 0, loc)

	p := NewBuilder(WithClock(func() time.Time { return now })).Build()

	assert.Equal(t, "2024-03-24 23:00:09 UTC", p.Timestamp)
}

func TestBuildSeeded(t *testing.T) {
	a := NewBuilder(WithRand(rand.New(rand.NewSource(42)))).Build()
	b := NewBuilder(WithRand(rand.New(rand.NewSource(42)))).Build()

	assert.Equal(t, a.Data, b.Data)
}

func TestBuilderConcurrent(t *testing.T) {
	b := NewBuilder(WithRand(rand.New(rand.NewSource(1))))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.NoError(t, b.Build().Validate())
			}
		}()
	}
	wg.Wait()
}

func TestDedupeSorted(t *testing.T) {
	cases := []struct {
		name   string
		sorted []int
		want   []int
	}{
		{name: "empty", sorted: nil, want: []int{}},
		{name: "single", sorted: []int{4}, want: []int{4}},
		{name: "all equal", sorted: []int{3, 3, 3, 3}, want: []int{3}},
		{name: "no duplicates", sorted: []int{1, 2, 3}, want: []int{1, 2, 3}},
		{name: "runs", sorted: []int{1, 1, 2, 5, 5, 5, 9, 30, 30}, want: []int{1, 2, 5, 9, 30}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DedupeSorted(c.sorted))
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Payload {
		return NewBuilder(WithRand(rand.New(rand.NewSource(3)))).Build()
	}

	cases := []struct {
		name   string
		mutate func(p *Payload)
		want   error
	}{
		{
			name:   "short unsorted",
			mutate: func(p *Payload) { p.Data.Unsorted = p.Data.Unsorted[1:] },
			want:   ErrCount,
		},
		{
			name:   "empty unique",
			mutate: func(p *Payload) { p.Data.Sorted.Unique = nil },
			want:   ErrCount,
		},
		{
			name: "out of range",
			mutate: func(p *Payload) {
				p.Data.Unsorted[0] = Max + 1
			},
			want: ErrRange,
		},
		{
			name: "descending raw",
			mutate: func(p *Payload) {
				raw := p.Data.Sorted.Raw
				sort.Sort(sort.Reverse(sort.IntSlice(raw)))
			},
			want: ErrOrder,
		},
		{
			name: "raw differs from unsorted",
			mutate: func(p *Payload) {
				for i := range p.Data.Sorted.Raw {
					p.Data.Sorted.Raw[i] = Min
				}
			},
			want: ErrMismatch,
		},
		{
			name: "unique misses a value",
			mutate: func(p *Payload) {
				p.Data.Sorted.Unique = p.Data.Sorted.Unique[:len(p.Data.Sorted.Unique)-1]
			},
			want: ErrMismatch,
		},
		{
			name:   "bad timestamp",
			mutate: func(p *Payload) { p.Timestamp = "2024-03-25T07:00:00Z" },
			want:   ErrTimestamp,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := valid()
			require.NoError(t, p.Validate())

			c.mutate(p)
			err := p.Validate()
			require.Error(t, err)
			if c.want != nil {
				assert.ErrorIs(t, err, c.want)
			}
		})
	}
}
