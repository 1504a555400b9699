// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package automation

import "strings"

// ShapeKind tags a ShapeNode.
type ShapeKind int

const (
	// ShapeOther is any shape that carries no extractable text.
	ShapeOther ShapeKind = iota
	// ShapeText is a plain text-frame shape.
	ShapeText
	// ShapeGroup contains child shapes.
	ShapeGroup
	// ShapeTable holds cell texts in row-major order.
	ShapeTable
	// ShapeUnreadable is a shape whose properties could not be read.
	ShapeUnreadable
)

// ShapeNode is one shape of a slide, read into memory.
type ShapeNode struct {
	Kind     ShapeKind
	Text     string
	Children []ShapeNode
	Cells    [][]string
	Err      error
}

// TextShape returns a plain text-frame node.
func TextShape(text string) ShapeNode {
	return ShapeNode{Kind: ShapeText, Text: text}
}

// GroupShape returns a group node wrapping children.
func GroupShape(children ...ShapeNode) ShapeNode {
	return ShapeNode{Kind: ShapeGroup, Children: children}
}

// TableShape returns a table node; cells[r][c] is the text of row r, column c.
func TableShape(cells [][]string) ShapeNode {
	return ShapeNode{Kind: ShapeTable, Cells: cells}
}

// UnreadableShape records a shape whose access failed.
func UnreadableShape(err error) ShapeNode {
	return ShapeNode{Kind: ShapeUnreadable, Err: err}
}

// OtherShape returns a node that contributes no text.
func OtherShape() ShapeNode {
	return ShapeNode{Kind: ShapeOther}
}

// Flatten returns the non-blank text lines of nodes in document order.
// Groups are spliced in place, tables contribute their cells row by row,
// and unreadable or textless shapes contribute nothing.
func Flatten(nodes []ShapeNode) []string {
	var lines []string
	for _, n := range nodes {
		switch n.Kind {
		case ShapeGroup:
			lines = append(lines, Flatten(n.Children)...)
		case ShapeTable:
			for _, row := range n.Cells {
				for _, cell := range row {
					if strings.TrimSpace(cell) != "" {
						lines = append(lines, cell)
					}
				}
			}
		case ShapeText:
			if strings.TrimSpace(n.Text) != "" {
				lines = append(lines, n.Text)
			}
		case ShapeUnreadable, ShapeOther:
		}
	}
	return lines
}
