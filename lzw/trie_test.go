package lzw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbolTrieLiteralsResolveToThemselves(t *testing.T) {
	var tr symbolTrie
	tr.init(8)

	for b := 0; b < 256; b++ {
		code, ok := tr.lookup(Code(1)<<8, byte(b))
		require.True(t, ok, "clear node should map every literal byte")
		require.Equal(t, Code(b), code)
	}
}

func TestSymbolTrieInsertThenLookup(t *testing.T) {
	var tr symbolTrie
	tr.init(2)

	root := Code(0)
	newCode := tr.insert(root, 'x')
	require.Equal(t, Code(1)<<2+2, newCode)

	got, ok := tr.lookup(root, 'x')
	require.True(t, ok)
	require.Equal(t, newCode, got)

	_, ok = tr.lookup(root, 'y')
	require.False(t, ok)
}

func TestSymbolTriePromotesSimpleToFull(t *testing.T) {
	var tr symbolTrie
	tr.init(8)

	root := Code(0)
	for i := 0; i < simpleChildren; i++ {
		tr.insert(root, byte(i))
	}
	require.Equal(t, kindSimple, tr.nodes[root].kind)

	tr.insert(root, byte(simpleChildren))
	require.Equal(t, kindFull, tr.nodes[root].kind)

	for i := 0; i <= simpleChildren; i++ {
		_, ok := tr.lookup(root, byte(i))
		require.True(t, ok, "child %d should still resolve after promotion", i)
	}
}

func TestSymbolTrieIsFull(t *testing.T) {
	var tr symbolTrie
	tr.init(12)
	require.False(t, tr.isFull())
	tr.size = maxCodeCount
	require.True(t, tr.isFull())
}

func TestDictionaryReconstructWalksPrefixChain(t *testing.T) {
	var d dictionary
	d.init(8)

	a := d.append(Code('a'), 'b')
	ab := d.append(a, 'c')

	out := make([]byte, d.depthOf(ab))
	first := d.reconstruct(ab, out)
	require.Equal(t, byte('a'), first)
	require.Equal(t, []byte("abc"), out)
}

func TestReconBufferCscscSelfReference(t *testing.T) {
	var d dictionary
	d.init(8)
	prev := d.append(Code('a'), 'b')

	var rb reconBuffer
	rb.fillCscsc(&d, prev)

	require.Equal(t, []byte("aba"), rb.buffer())
}
