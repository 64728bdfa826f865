/*
Package miniml reads, edits and writes MiniML documents.

MiniML is a small line-oriented hierarchical text format. A document is a
single tree of nodes; every node has a name, an optional identifier that
is unique within the document, an ordered list of string values and an
ordered list of child nodes. The file extension is ".mnml".

Each line holds one directive. Leading and trailing whitespace is
ignored, so indentation is purely cosmetic:

	// a comment
	root            opens a node named "root"
	'r1'            gives the open node the identifier "r1"
	=hello          appends the value "hello" to the open node
	child           opens a child of the open node
	__end__         closes the most recently opened node

Blank lines and comments are skipped, and a value line outside of any
node is dropped silently. Every other violation aborts loading with a
*ParseError carrying the offending line number; the sentinel it wraps
(ErrSecondRoot, ErrUnmatchedEnd, ErrUnclosedNode, ErrRepeatingID,
ErrSecondID, ...) can be matched with errors.Is.

A document loaded with Open stays bound to its file. Every mutation, on
the Document or on any of its nodes, re-renders the whole tree and
atomically replaces the file before returning:

	doc, err := miniml.Open("settings.mnml")
	if err != nil {
		// handle error
	}

	server := doc.NodeByID("server")
	if err := server.AddValue("port=8080"); err != nil {
		// the in-memory tree changed, but the file could not be written
	}

Documents returned by Parse are not bound to a file; mutations on them
are applied in memory only, and the text can be obtained with Bytes or
WriteTo.

The read accessors of Node return copies, so callers cannot change a
tree except through the mutation methods. Neither Document nor Node is
safe for concurrent use.
*/
package miniml
