package main

import (
	"github.com/danswartzendruber/avl"
	"strings"
)

//
// A set of wrapper routines to the AVL package.  We do this to
// hide the AVL interface from the interpreter code.  The tree holds
// the label table, keyed by label name.  An empty tree is a nil root
//

func cmpLabelKey(key any, node any) int {

	return strings.Compare(key.(string), node.(*labelNode).name)
}

func cmpLabelNode(node1, node2 any) int {

	return strings.Compare(node1.(*labelNode).name, node2.(*labelNode).name)
}

//
// If a label is declared more than once, the first declaration is
// the one that counts, so a duplicate insert is simply dropped
//

func (p *program) addLabel(name string, line int) {

	label := &labelNode{name: name, line: line}

	_ = avl.AvlTreeInsert(&p.labels, &label.avl, label, cmpLabelNode)
}

func (p *program) labelAvlTreeLookup(name string) *labelNode {

	n := avl.AvlTreeLookup(p.labels, name, cmpLabelKey)
	if n != nil {
		return n.(*labelNode)
	} else {
		return nil
	}
}

func (p *program) labelAvlTreeFirstInOrder() *labelNode {

	n := avl.AvlTreeFirstInOrder(p.labels)
	if n != nil {
		return n.(*labelNode)
	} else {
		return nil
	}
}

func labelAvlTreeNextInOrder(label *labelNode) *labelNode {

	n := avl.AvlTreeNextInOrder(&label.avl)
	if n != nil {
		return n.(*labelNode)
	} else {
		return nil
	}
}

//
// Return the line a label was declared on.  An unknown label is
// fatal
//

func (p *program) getLabelLine(name string) int {

	label := p.labelAvlTreeLookup(name)
	if label == nil {
		p.runtimeError(ENOLABEL, name)
	}

	return label.line
}

//
// Return all the labels, in name order
//

func (p *program) labelList() []*labelNode {

	var ret []*labelNode

	for label := p.labelAvlTreeFirstInOrder(); label != nil; {
		ret = append(ret, label)
		label = labelAvlTreeNextInOrder(label)
	}

	return ret
}
