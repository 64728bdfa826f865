//go:build go1.18

package miniml_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-miniml"
	"github.com/KimNorgaard/go-miniml/internal/testutil"
)

func FuzzRoundTrip(f *testing.F) {
	// Seed the corpus with the embedded fixtures, valid and invalid.
	fixtures, err := testutil.Fixtures()
	if err != nil {
		f.Fatalf("failed to list fixtures: %v", err)
	}
	for _, name := range fixtures {
		data, err := testutil.ReadTestData(name)
		if err != nil {
			f.Fatalf("failed to read seed file %s: %v", name, err)
		}
		f.Add(data)
	}

	f.Add([]byte(""))
	f.Add([]byte("a\n__end__"))
	f.Add([]byte("a\n'"))
	f.Add([]byte("a\n''\n=\n__end__"))

	f.Fuzz(func(t *testing.T, originalData []byte) {
		// 1. Anything that does not parse is fine, as long as it does not panic.
		doc1, err := miniml.Parse(bytes.NewReader(originalData))
		if err != nil {
			return
		}

		// 2. The canonical form of a parsed document must parse again.
		out1 := doc1.Bytes()
		doc2, err := miniml.Parse(bytes.NewReader(out1))
		require.NoError(t, err, "canonical output failed to parse:\n%s", out1)

		// 3. And it must be a fixed point.
		out2 := doc2.Bytes()
		require.Equal(t, string(out1), string(out2))

		if doc1.Root() == nil {
			require.Nil(t, doc2.Root())
			return
		}
		require.Equal(t, shapeOf(doc1.Root()), shapeOf(doc2.Root()))
	})
}

func FuzzMutationRoundTrip(f *testing.F) {
	f.Add("root", "r1", "hello")
	f.Add("a b", "", "  leading")
	f.Add("__end__x", "it's", "=x")
	f.Add("name", "a\xffb", "value")
	f.Add("\uFEFFname", "id", "v\uFEFF")

	f.Fuzz(func(t *testing.T, name, id, value string) {
		// 1. Build a document through the mutation API; rejected input is fine.
		doc, err := miniml.Parse(bytes.NewReader(nil))
		require.NoError(t, err)
		root, err := doc.CreateNode(name, nil)
		if err != nil {
			return
		}
		if err := root.SetID(id); err != nil {
			return
		}
		if err := root.AddValue(value); err != nil {
			return
		}
		child, err := root.CreateChild(name)
		require.NoError(t, err)
		require.NoError(t, child.AddValue(value))

		// 2. Whatever was accepted must read back unchanged.
		out := doc.Bytes()
		reloaded, err := miniml.Parse(bytes.NewReader(out))
		require.NoError(t, err, "mutation output failed to parse:\n%q", out)
		require.Equal(t, shapeOf(root), shapeOf(reloaded.Root()))
	})
}
