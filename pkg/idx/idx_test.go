package idx_test

import (
	"testing"
	"time"

	"github.com/clearlens/camwatch/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.NotEmpty(t, id.String())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
	require.False(t, id.IsZero())
}

func TestOrdering(t *testing.T) {
	a := idx.NewAt(time.Unix(1, 0).UTC())
	b := idx.NewAt(time.Unix(2, 0).UTC())

	// ULIDs sort lexicographically by generation time.
	require.Less(t, a.String(), b.String())
}

func TestTimeExtraction(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	id := idx.NewAt(tm)

	require.WithinDuration(t, tm, id.Time(), time.Millisecond)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := idx.Parse("not-a-ulid")
	require.ErrorIs(t, err, idx.ErrInvalid)

	_, err = idx.Parse("")
	require.ErrorIs(t, err, idx.ErrInvalid)
}
