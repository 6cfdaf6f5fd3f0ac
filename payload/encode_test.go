package payload

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

func fixedPayload() *Payload {
	return &Payload{
		Data: Data{
			Unsorted: []int{3, 1, 3},
			Sorted: Sorted{
				Raw:    []int{1, 3, 3},
				Unique: []int{1, 3},
			},
		},
		Timestamp: "2024-03-25 07:00:00 UTC",
	}
}

func TestMarshalKeyOrder(t *testing.T) {
	buf, err := fixedPayload().Marshal()
	require.NoError(t, err)

	assert.Equal(t, `{"data":{"unsorted":[3,1,3],"sorted":{"raw":[1,3,3],"unique":[1,3]}},"timestamp":"2024-03-25 07:00:00 UTC"}`, string(buf))
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "JSON", "yaml", "msgpack"} {
		f, err := ParseFormat(s)
		assert.NoError(t, err, s)
		assert.Equal(t, Format(strings.ToLower(s)), f)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestEncode(t *testing.T) {
	p := NewBuilder(
		WithRand(rand.New(rand.NewSource(11))),
		WithClock(func() time.Time { return time.Unix(0, 0) }),
	).Build()

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatJSON, p, false))
		assert.True(t, strings.HasSuffix(buf.String(), "}\n"))

		var got Payload
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, *p, got)
	})

	t.Run("pretty json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatJSON, p, true))
		assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"data\": {\n"))
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatYAML, p, false))
		assert.Contains(t, buf.String(), "timestamp:")
		assert.Contains(t, buf.String(), "1970-01-01 00:00:00 UTC")

		var got Payload
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, *p, got)
	})

	t.Run("msgpack", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatMsgpack, p, false))

		var got Payload
		require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, *p, got)
	})

	t.Run("unknown", func(t *testing.T) {
		err := Encode(&bytes.Buffer{}, Format("xml"), p, false)
		assert.ErrorIs(t, err, ErrFormat)
	})
}

func TestSchema(t *testing.T) {
	buf, err := Schema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(buf, &schema))
	assert.Equal(t, "datagen payload", schema["title"])

	s := string(buf)
	for _, key := range []string{"Payload", "Data", "Sorted", "unsorted", "raw", "unique", "timestamp"} {
		assert.Contains(t, s, key)
	}
}
