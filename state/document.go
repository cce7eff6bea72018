package state

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yllada/save-state/common"
)

// onOffElement carries the flag in the state document:
//
//	<heartbeat>
//	    <status>
//	        <onoff>ON</onoff>
//	    </status>
//	</heartbeat>
const onOffElement = "onoff"

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
	xmlIndent = "    "
)

// Node is a generic element of a parsed XML tree.
type Node struct {
	Name     string
	Text     string // character data directly inside this element
	Children []*Node
}

// Content returns the text of the node and all its descendants in
// document order.
func (n *Node) Content() string {
	var sb strings.Builder
	n.content(&sb)
	return sb.String()
}

func (n *Node) content(sb *strings.Builder) {
	sb.WriteString(n.Text)
	for _, child := range n.Children {
		child.content(sb)
	}
}

// Parse reads an XML document into a Node tree and returns its root element.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name.Local}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			} else if root == nil {
				root = node
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("document has no root element")
	}
	return root, nil
}

// Walk visits n and every descendant depth first, parents before children.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.Children {
		Walk(child, visit)
	}
}

// Lookup finds the onoff element under root. The last onoff element in
// document order decides the state, and only the exact text ON means
// Running; found is false when there is none.
func Lookup(root *Node) (st RunState, found bool) {
	Walk(root, func(n *Node) {
		if n.Name != onOffElement {
			return
		}
		found = true
		st = RunState(n.Content() == Running.OnOff())
	})
	return st, found
}

// Decode parses a state document. Any document without an onoff element
// decodes to Idle.
func Decode(r io.Reader) (RunState, error) {
	root, err := Parse(r)
	if err != nil {
		return Idle, fmt.Errorf("%w: %w", common.ErrStateParse, err)
	}
	st, _ := Lookup(root)
	return st, nil
}

type heartbeatDoc struct {
	XMLName xml.Name  `xml:"heartbeat"`
	Status  statusDoc `xml:"status"`
}

type statusDoc struct {
	OnOff string `xml:"onoff"`
}

// Encode writes the state document for st to w with four-space indentation.
func Encode(w io.Writer, st RunState) error {
	if _, err := io.WriteString(w, xmlHeader); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", xmlIndent)
	doc := heartbeatDoc{Status: statusDoc{OnOff: st.OnOff()}}
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")
	return err
}
