package idx_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/aussiebroadwan/quizbank/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.Len(t, id.String(), 26)

	parsed, err := idx.Parse(" " + id.String() + " ")
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "21-1234-567890"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, "input %q", s)
	}
}

func TestNewAtSortsByTime(t *testing.T) {
	a := idx.NewAt(time.Unix(1, 0))
	b := idx.NewAt(time.Unix(2, 0))

	// Account listings rely on ids sorting the same way as creation time
	require.Less(t, a.String(), b.String())
}

func TestSourceIsMonotonicWithinMillisecond(t *testing.T) {
	src := idx.NewSource(bytes.NewReader(bytes.Repeat([]byte{0x42}, 1024)))
	at := time.UnixMilli(1_700_000_000_000)

	prev, err := src.At(at)
	require.NoError(t, err)
	for range 10 {
		next, err := src.At(at)
		require.NoError(t, err)
		require.Less(t, prev.String(), next.String())
		prev = next
	}
}

func TestTimeExtraction(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	id := idx.NewAt(tm)

	require.Equal(t, tm, id.Time())
	require.True(t, idx.ID("").Time().IsZero())
	require.True(t, idx.ID("garbage").Time().IsZero())
}
