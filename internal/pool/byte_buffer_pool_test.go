package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	bb.MustWrite([]byte("hello"))
	n, err := bb.Write([]byte(" world"))
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Equal(t, []byte("hello world"), bb.Bytes())
	require.Equal(t, 11, bb.Len())

	bb.Reset()
	require.Zero(t, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 11)
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("abcd"))

	bb.Grow(1024)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 1024)
	require.Equal(t, []byte("abcd"), bb.Bytes())

	// Growing within existing capacity keeps the backing array.
	capBefore := bb.Cap()
	bb.Grow(16)
	require.Equal(t, capBefore, bb.Cap())
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("payload"))

	var sink bytes.Buffer
	n, err := bb.WriteTo(&sink)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Equal(t, "payload", sink.String())
}

func TestByteBufferPool_Reuse(t *testing.T) {
	p := NewByteBufferPool(32, 0)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	// Returned buffers come back reset.
	next := p.Get()
	require.Zero(t, next.Len())

	p.Put(nil) // tolerated
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(8, 64)

	big := p.Get()
	big.Grow(1024)
	big.MustWrite(bytes.Repeat([]byte("x"), 128))
	p.Put(big)

	// Oversized buffers are discarded, so the next Get yields a fresh one.
	next := p.Get()
	require.LessOrEqual(t, next.Cap(), 64)
}

func TestContainerBufferPool(t *testing.T) {
	bb := GetContainerBuffer()
	require.NotNil(t, bb)
	require.Zero(t, bb.Len())

	bb.MustWrite([]byte("blob"))
	PutContainerBuffer(bb)
}
