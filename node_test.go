package miniml_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-miniml"
)

func TestNode_AddValue(t *testing.T) {
	doc, path := openDoc(t, sample)
	root := doc.Root()

	require.NoError(t, root.AddValue("second"))
	require.NoError(t, root.AddValue("hello"))
	require.Equal(t, []string{"hello", "second", "hello"}, root.Values())

	reloaded, err := miniml.Open(path)
	require.NoError(t, err)
	require.Equal(t, root.Values(), reloaded.Root().Values())
}

func TestNode_AddValueRejectsUnrepresentable(t *testing.T) {
	doc, path := openDoc(t, sample)

	for _, v := range []string{"two\nlines", "carriage\rreturn", "trailing ", "tab\t", "a\xffb"} {
		err := doc.Root().AddValue(v)
		require.ErrorIs(t, err, miniml.ErrInvalidValue, "value %q", v)
	}
	require.Equal(t, []string{"hello"}, doc.Root().Values())
	require.Equal(t, sample, readDoc(t, path))

	// Leading whitespace and empty values survive a reload.
	require.NoError(t, doc.Root().AddValue("  leading"))
	require.NoError(t, doc.Root().AddValue(""))
	reloaded, err := miniml.Open(path)
	require.NoError(t, err)
	require.Equal(t, []string{"hello", "  leading", ""}, reloaded.Root().Values())
}

func TestNode_AcceptedInputSurvivesReload(t *testing.T) {
	tests := []struct {
		name  string
		node  string
		id    string
		value string
		err   error
	}{
		{"Plain", "root", "r1", "hello", nil},
		{"Quotes in id", "root", "it's", "v", nil},
		{"Directive-like value", "root", "", "=x", nil},
		{"Leading whitespace value", "root", "", "  x", nil},
		{"End marker prefix name", "__end__x", "", "v", nil},
		{"Invalid UTF-8 value", "root", "", "a\xffb", miniml.ErrInvalidValue},
		{"Invalid UTF-8 id", "root", "a\xffb", "v", miniml.ErrInvalidID},
		{"Invalid UTF-8 name", "a\xffb", "", "v", miniml.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "doc.mnml")
			doc, err := miniml.Create(path)
			require.NoError(t, err)

			err = func() error {
				root, err := doc.CreateNode(tt.node, nil)
				if err != nil {
					return err
				}
				if err := root.SetID(tt.id); err != nil {
					return err
				}
				return root.AddValue(tt.value)
			}()
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)

			reloaded, err := miniml.Open(path)
			require.NoError(t, err)
			require.Equal(t, tt.node, reloaded.Root().Name())
			require.Equal(t, tt.id, reloaded.Root().ID())
			require.Equal(t, []string{tt.value}, reloaded.Root().Values())
		})
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, miniml.ValidateName("server"))
	require.ErrorIs(t, miniml.ValidateName("=x"), miniml.ErrInvalidName)
	require.ErrorIs(t, miniml.ValidateName("\xff"), miniml.ErrInvalidName)

	require.NoError(t, miniml.ValidateValue(""))
	require.ErrorIs(t, miniml.ValidateValue("x "), miniml.ErrInvalidValue)

	require.NoError(t, miniml.ValidateID(""))
	require.ErrorIs(t, miniml.ValidateID("a\nb"), miniml.ErrInvalidID)
}

func TestNode_RemoveValue(t *testing.T) {
	doc, path := openDoc(t, "a\n=x\n=y\n=x\n__end__\n")
	root := doc.Root()

	require.NoError(t, root.RemoveValue("x"))
	require.Equal(t, []string{"y", "x"}, root.Values())
	require.Equal(t, "a\n\t=y\n\t=x\n__end__\n", readDoc(t, path))

	before := readDoc(t, path)
	err := root.RemoveValue("missing")
	require.ErrorIs(t, err, miniml.ErrValueNotFound)
	require.Contains(t, err.Error(), `"missing"`)
	require.Equal(t, []string{"y", "x"}, root.Values())
	require.Equal(t, before, readDoc(t, path))
}

func TestNode_RemoveChild(t *testing.T) {
	doc, path := openDoc(t, "a\nb\n'keep'\n__end__\nc\n'gone'\nd\n=deep\n__end__\n__end__\n__end__\n")
	root := doc.Root()
	c := root.Children()[1]
	d := c.Children()[0]

	require.NoError(t, root.RemoveChild(c))
	require.Equal(t, "a\n\tb\n\t\t'keep'\n\t__end__\n__end__\n", readDoc(t, path))
	require.Nil(t, doc.NodeByID("gone"))

	// The removed subtree is still readable.
	require.Nil(t, c.Parent())
	require.Nil(t, c.Document())
	require.Equal(t, "gone", c.ID())
	require.Same(t, c, d.Parent())
	require.Equal(t, []string{"deep"}, d.Values())

	// But no longer writable.
	require.ErrorIs(t, c.AddValue("x"), miniml.ErrDetached)
	require.ErrorIs(t, d.SetID("z"), miniml.ErrDetached)
	_, err := d.CreateChild("e")
	require.ErrorIs(t, err, miniml.ErrDetached)
	_, err = doc.CreateNode("e", d)
	require.ErrorIs(t, err, miniml.ErrDetached)

	// Removing it again fails without touching the file.
	before := readDoc(t, path)
	err = root.RemoveChild(c)
	require.ErrorIs(t, err, miniml.ErrChildNotFound)
	require.Contains(t, err.Error(), `"c"`)
	require.ErrorIs(t, root.RemoveChild(nil), miniml.ErrChildNotFound)
	require.Equal(t, before, readDoc(t, path))
}

func TestNode_RemoveChildOnlyDirectChildren(t *testing.T) {
	doc := mustParse(t, "a\nb\nc\n__end__\n__end__\n__end__\n")
	root := doc.Root()
	grandchild := root.Children()[0].Children()[0]

	require.ErrorIs(t, root.RemoveChild(grandchild), miniml.ErrChildNotFound)
	require.Same(t, doc, grandchild.Document())
}

func TestNode_RemoveChildrenByName(t *testing.T) {
	doc, path := openDoc(t, "a\nx\n=1\n__end__\ny\n__end__\nx\n=2\n__end__\nz\n__end__\n__end__\n")
	root := doc.Root()
	xs := root.ChildrenByName("x")
	require.Len(t, xs, 2)

	removed, err := root.RemoveChildrenByName("x")
	require.NoError(t, err)
	require.Equal(t, 2, removed)
	require.Equal(t, "a\n\ty\n\t__end__\n\tz\n\t__end__\n__end__\n", readDoc(t, path))
	for _, x := range xs {
		require.Nil(t, x.Document())
	}

	// No match still resyncs.
	require.NoError(t, writeOver(path, "stale"))
	removed, err = root.RemoveChildrenByName("nothing")
	require.NoError(t, err)
	require.Zero(t, removed)
	require.Equal(t, "a\n\ty\n\t__end__\n\tz\n\t__end__\n__end__\n", readDoc(t, path))
}

func TestNode_SetID(t *testing.T) {
	doc, path := openDoc(t, "a\n'x'\nb\n__end__\nc\n'y'\n__end__\n__end__\n")
	root := doc.Root()
	b := root.FirstChild("b")
	require.NotNil(t, b)

	require.NoError(t, b.SetID("new"))
	require.Same(t, b, doc.NodeByID("new"))
	require.Equal(t, "a\n\t'x'\n\tb\n\t\t'new'\n\t__end__\n\tc\n\t\t'y'\n\t__end__\n__end__\n", readDoc(t, path))

	// Reassigning replaces the previous id.
	require.NoError(t, b.SetID("newer"))
	require.Nil(t, doc.NodeByID("new"))

	// Setting a node's own id again is allowed.
	require.NoError(t, b.SetID("newer"))

	before := readDoc(t, path)
	err := b.SetID("y")
	require.ErrorIs(t, err, miniml.ErrRepeatingID)
	require.Equal(t, "newer", b.ID())
	require.Equal(t, before, readDoc(t, path))

	require.ErrorIs(t, b.SetID("bad\nid"), miniml.ErrInvalidID)
	require.ErrorIs(t, b.SetID("bad\xffid"), miniml.ErrInvalidID)

	// An empty id clears it.
	require.NoError(t, b.SetID(""))
	require.False(t, b.HasID())
	require.Equal(t, "a\n\t'x'\n\tb\n\t__end__\n\tc\n\t\t'y'\n\t__end__\n__end__\n", readDoc(t, path))
}

func TestNode_ReadAccessorsReturnCopies(t *testing.T) {
	doc := mustParse(t, sample)
	root := doc.Root()

	values := root.Values()
	values[0] = "changed"
	children := root.Children()
	children[0] = nil

	require.Equal(t, []string{"hello"}, root.Values())
	require.NotNil(t, root.Children()[0])

	byName := root.ChildrenByName("child")
	require.Len(t, byName, 1)
	byName[0] = nil
	require.NotNil(t, root.FirstChild("child"))
	require.Nil(t, root.FirstChild("missing"))
	require.Empty(t, root.ChildrenByName("missing"))
}

func TestNode_String(t *testing.T) {
	doc := mustParse(t, sample)
	require.Equal(t, "root 'r1'", doc.Root().String())
	require.Equal(t, "child", doc.Root().Children()[0].String())
}
