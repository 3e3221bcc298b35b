package letters

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "a", "A"},
		{"uppercase", "Q", "Q"},
		{"last letter wins", "abc", "C"},
		{"digits dropped", "7", ""},
		{"trailing junk ignored", "x1!", "X"},
		{"empty", "", ""},
		{"non ascii", "é", ""},
		{"space padded", " t ", "T"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, Normalize(got), "normalization must be stable")
		})
	}
}

func TestWith(t *testing.T) {
	var s Set
	s, v, err := s.With(0, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", v)
	assert.Equal(t, "A", s.Center())

	s, v, err = s.With(3, "42")
	require.NoError(t, err)
	assert.Equal(t, "", v)
	assert.Equal(t, "", s[3])

	_, _, err = s.With(7, "b")
	assert.ErrorIs(t, err, ErrIndex)
	_, _, err = s.With(-1, "b")
	assert.ErrorIs(t, err, ErrIndex)
}

func TestFromSlice(t *testing.T) {
	s := FromSlice([]string{"a", "r", "e", "h", "t", "s", "o"})
	assert.Equal(t, Set{"A", "R", "E", "H", "T", "S", "O"}, s)
	assert.True(t, s.Complete())

	short := FromSlice([]string{"a", "b"})
	assert.Equal(t, 2, short.Filled())
	assert.False(t, short.Complete())

	long := FromSlice([]string{"a", "b", "c", "d", "e", "f", "g", "h"})
	assert.Equal(t, Set{"A", "B", "C", "D", "E", "F", "G"}, long)
}

func TestFromSliceIdempotent(t *testing.T) {
	in := []string{"a1", "Rr", "", "%", "t", "xs", "o"}
	once := FromSlice(in)
	twice := FromSlice(once.Slice())
	assert.Equal(t, once, twice)
}

func TestShuffleKeepsCenterAndLetters(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	s := Set{"A", "R", "", "H", "T", "", "O"}
	for i := 0; i < 50; i++ {
		got := s.Shuffle(r)
		assert.Equal(t, "A", got.Center())

		before, after := s.Outer(), got.Outer()
		sort.Strings(before)
		sort.Strings(after)
		assert.Equal(t, before, after)

		// populated outer letters come first, empties pad the tail
		assert.Equal(t, "", got[5])
		assert.Equal(t, "", got[6])
	}
}

func TestShuffleNilSource(t *testing.T) {
	s := Set{"A", "R", "E", "H", "T", "S", "O"}
	got := s.Shuffle(nil)
	assert.Equal(t, "A", got.Center())
	assert.ElementsMatch(t, s.Outer(), got.Outer())
}

func TestDistinct(t *testing.T) {
	s := Set{"A", "B", "A", "", "C", "B", "D"}
	assert.Equal(t, []byte("abcd"), s.Distinct())
}

func TestString(t *testing.T) {
	assert.Equal(t, "A/RE_TSO", Set{"A", "R", "E", "", "T", "S", "O"}.String())
	assert.Equal(t, "_/______", Set{}.String())
}
