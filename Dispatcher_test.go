package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArgumentHistoryOrder(t *testing.T) {
	s, _, _ := openCanonical(t)

	// Dispatch to list_B1 slot 7 -- path [pathB1, 7].
	buf := make([]byte, 20)
	s.ReadBytes(pathB1, 7, buf)

	require.Equal(t, 7, s.GetRequestArg(0))
	require.Equal(t, pathB1, s.GetRequestArg(1))
}

func TestCallbackCacheIntegerValue(t *testing.T) {
	s, _, _ := openCanonical(t)

	var sawFromCache int32
	root := s.Root().(*GroupNode)
	groupB0 := root.Children[pathB0].(*GroupNode)
	c0 := groupB0.Children[pathC0].(*LeafNode)
	c0.OnChange = func(op Op, lastArg int) {
		sawFromCache = s.GetCallbackCache().I32
	}

	require.False(t, s.WriteI32(pathB0, pathC0, 4242).IsError())
	require.Equal(t, int32(4242), sawFromCache)
}

func TestCallbackCacheBytesValue(t *testing.T) {
	s, _, _ := openCanonical(t)

	root := s.Root().(*GroupNode)
	listB1 := root.Children[pathB1].(*ListNode)
	c2 := listB1.Element.(*LeafNode)

	var sawPtr *byte
	c2.OnChange = func(op Op, lastArg int) {
		cache := s.GetCallbackCache()
		if len(cache.Bytes) > 0 {
			sawPtr = &cache.Bytes[0]
		}
	}

	in := make([]byte, 20)
	copy(in, "caller buffer")
	require.False(t, s.WriteBytes(pathB1, 3, in).IsError())
	require.Same(t, &in[0], sawPtr)
}

func TestIntegerRoundTripAcrossRange(t *testing.T) {
	s, _, _ := openCanonical(t)

	for _, v := range []int32{0, 1, 50, 144} {
		require.False(t, s.WriteI32(pathB0, pathC1, v).IsError())
		require.Equal(t, v, s.ReadI32(pathB0, pathC1))
	}

	require.True(t, s.WriteI32(pathB0, pathC1, 145).IsError())
	require.Equal(t, int32(144), s.ReadI32(pathB0, pathC1))
}

func TestByteArrayRoundTripAnySlot(t *testing.T) {
	s, _, _ := openCanonical(t)

	for _, slot := range []int{0, 1, 34} {
		in := make([]byte, 20)
		copy(in, "slot-data")
		in[19] = byte(slot)

		require.False(t, s.WriteBytes(pathB1, slot, in).IsError())

		out := make([]byte, 20)
		s.ReadBytes(pathB1, slot, out)
		require.Equal(t, in, out)
	}
}

func TestDispatchDepthExceeded(t *testing.T) {
	s, _, _ := openCanonical(t)

	rq := &Request{Op: OpRead, NArg: MaxDepth + 1}
	for i := range rq.Arg {
		rq.Arg[i] = 0
	}
	var v int32
	rq.Val = &v

	r := s.SettingsRequest(rq)
	require.Equal(t, ResultDepthExceeded, r)
}
