package psb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceTakeAndRemovePrefix(t *testing.T) {
	s := NewSlice([]byte{1, 2, 3, 4, 5})
	require.Equal(t, 5, s.Size())

	b, ok := s.take(2)
	require.True(t, ok)
	require.Equal(t, []byte{1, 2}, b)
	require.Equal(t, 3, s.Size())

	require.Equal(t, 3, s.RemovePrefix(10))
	require.True(t, s.Empty())
}

func TestSliceTakeShortReadFails(t *testing.T) {
	s := NewSlice([]byte{1})
	_, ok := s.take(2)
	require.False(t, ok)
}

func TestStreamAccumulates(t *testing.T) {
	s := NewStream(nil)
	s.WriteByte(1)
	s.Write([]byte{2, 3})
	require.Equal(t, []byte{1, 2, 3}, s.Bytes())
	require.Equal(t, 3, s.Len())
}
