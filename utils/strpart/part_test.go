package strpart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_Validation covers every accepted and rejected window shape.
func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name       string
		backing    string
		start, end int
		wantErr    bool
	}{
		{"empty", "", -1, -1, false},
		{"empty over data", "Hey", -1, -1, false},
		{"empty with end", "Hey", -1, 0, true},
		{"start after end", "Hey", 2, 1, true},
		{"negative pair", "Hey", -3, -4, true},
		{"end past backing", "Hey", 1, 7, true},
		{"end at length", "Hey", 0, 3, true},
		{"negative end", "Hey", 0, -2, true},
		{"single byte", "Hey", 1, 1, false},
		{"whole", "Hey", 0, 2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New([]byte(tc.backing), tc.start, tc.end)
			if tc.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidArgument), "error should be ErrInvalidArgument: %v", err)
				require.Nil(t, p)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, p)
		})
	}
}

func TestNew_EmptyState(t *testing.T) {
	p, err := New(nil, -1, -1)
	require.NoError(t, err)
	require.True(t, p.IsEmpty())
	require.Equal(t, 0, p.Len())
	require.Equal(t, -1, p.Start())
	require.Equal(t, -1, p.End())
	require.Equal(t, []byte{}, p.Bytes())
	require.Equal(t, "", p.String())
}

// TestBytes_WholeBackingIsNotCopied checks the whole-buffer fast path and the copy path.
func TestBytes_WholeBackingIsNotCopied(t *testing.T) {
	backing := []byte("abcdef")

	whole, err := New(backing, 0, 5)
	require.NoError(t, err)
	out := whole.Bytes()
	require.Equal(t, "abcdef", string(out))
	require.True(t, &out[0] == &backing[0], "whole window should return the backing buffer")

	inner, err := New(backing, 1, 3)
	require.NoError(t, err)
	out = inner.Bytes()
	require.Equal(t, "bcd", string(out))
	require.False(t, &out[0] == &backing[1], "sub-window should be copied")
	require.Equal(t, 3, inner.Len())
}

func TestAppend_Cases(t *testing.T) {
	t.Run("empty adopts input", func(t *testing.T) {
		in := []byte("xyz")
		p := Empty().Append(in)
		require.Equal(t, "xyz", p.String())
		require.Equal(t, 0, p.Start())
		require.Equal(t, 2, p.End())
		require.True(t, &p.Backing()[0] == &in[0])
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		p := Whole([]byte("ab"))
		before := p.Backing()
		p.Append(nil)
		require.Equal(t, "ab", p.String())
		require.True(t, &before[0] == &p.Backing()[0])
	})

	t.Run("window at tail appends in place", func(t *testing.T) {
		backing := make([]byte, 3, 16)
		copy(backing, "abc")
		p, err := New(backing, 1, 2)
		require.NoError(t, err)

		p.Append([]byte("de"))
		require.Equal(t, "bcde", p.String())
		require.Equal(t, 1, p.Start(), "in-place append keeps the start")
		require.Equal(t, 4, p.End())
		require.Equal(t, len(backing)+2, len(p.Backing()), "backing grows by exactly the appended length")
		require.True(t, &p.Backing()[0] == &backing[0], "spare capacity should be reused")
	})

	t.Run("trailing bytes force a rebuild", func(t *testing.T) {
		backing := []byte("abcdef")
		p, err := New(backing, 1, 2)
		require.NoError(t, err)

		p.Append([]byte("XY"))
		require.Equal(t, "bcXY", p.String())
		require.Equal(t, 0, p.Start())
		require.Equal(t, 3, p.End())
		require.Equal(t, 4, len(p.Backing()))
		require.Equal(t, "abcdef", string(backing), "the old backing must not be modified")
	})

	t.Run("adopted input is capped", func(t *testing.T) {
		shared := []byte("abcdef")
		p := Empty().Append(shared[:2])
		p.Append([]byte("ZZ"))
		require.Equal(t, "abZZ", p.String())
		require.Equal(t, "abcdef", string(shared), "append must not write past the adopted slice")
	})
}

func TestClean(t *testing.T) {
	p, err := New([]byte("0123456789"), 3, 5)
	require.NoError(t, err)

	p.Clean()
	require.Equal(t, "345", p.String())
	require.Equal(t, 0, p.Start())
	require.Equal(t, 2, p.End())
	require.Equal(t, 3, len(p.Backing()))

	once := p.String()
	p.Clean()
	require.Equal(t, once, p.String(), "Clean should be idempotent")
	require.Equal(t, 3, p.Len())

	e := Empty().Clean()
	require.True(t, e.IsEmpty())
}

func TestClear(t *testing.T) {
	p := Whole([]byte("abc")).Clear()
	require.True(t, p.IsEmpty())
	require.Nil(t, p.Backing())
	require.Equal(t, 0, p.Len())
}

func TestRecut(t *testing.T) {
	backing := []byte("hello world")
	p := Whole(backing)

	require.NoError(t, p.Recut(6, 10))
	require.Equal(t, "world", p.String())
	require.True(t, &p.Backing()[0] == &backing[0], "recut keeps the backing buffer")

	err := p.Recut(4, 11)
	require.True(t, errors.Is(err, ErrInvalidArgument))
	require.Equal(t, "world", p.String(), "failed recut leaves the window unchanged")

	require.NoError(t, p.Recut(-1, -1))
	require.True(t, p.IsEmpty())
}

func TestWithEndpoints(t *testing.T) {
	p := Whole([]byte("key:value"))

	head, err := p.WithEndpoints(0, 3)
	require.NoError(t, err)
	tail, err := p.WithEndpoints(4, 8)
	require.NoError(t, err)

	require.Equal(t, "key:", head.String())
	require.Equal(t, "value", tail.String())
	require.Equal(t, "key:value", p.String(), "receiver is not modified")
	require.True(t, &head.Backing()[0] == &tail.Backing()[0])

	_, err = p.WithEndpoints(5, 4)
	require.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestEqual(t *testing.T) {
	p, err := New([]byte("xxabcxx"), 2, 4)
	require.NoError(t, err)

	assert.True(t, p.Equal([]byte("abc")))
	assert.False(t, p.Equal([]byte("abd")))
	assert.False(t, p.Equal([]byte("ab")))
	assert.True(t, Empty().Equal(nil))
	assert.True(t, Empty().Equal([]byte{}))
}

func TestEqualPart(t *testing.T) {
	a, err := New([]byte("--abc"), 2, 4)
	require.NoError(t, err)
	b, err := New([]byte("abc--"), 0, 2)
	require.NoError(t, err)
	c, err := New([]byte("-abc-"), 1, 3)
	require.NoError(t, err)
	d, err := New([]byte("-abd-"), 1, 3)
	require.NoError(t, err)

	assert.True(t, a.EqualPart(b), "offset-0 path")
	assert.True(t, b.EqualPart(a), "offset-0 path, reversed")
	assert.True(t, a.EqualPart(c), "paired scan path")
	assert.False(t, c.EqualPart(d))
	assert.False(t, a.EqualPart(Whole([]byte("ab"))))
	assert.True(t, Empty().EqualPart(Empty()))
	assert.False(t, Empty().EqualPart(a))
}

func TestIndexByte(t *testing.T) {
	p, err := New([]byte(":ab:cd:"), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, 3, p.IndexByte(':', 0), "search is clamped to the window")
	assert.Equal(t, 3, p.IndexByte(':', 3))
	assert.Equal(t, -1, p.IndexByte(':', 4), "the last colon is outside the window")
	assert.Equal(t, -1, p.IndexByte(':', 9))
	assert.Equal(t, -1, Empty().IndexByte(':', 0))
	assert.Equal(t, byte('d'), p.At(5))
}
