package search

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

type traceNode struct {
	id     string
	parent string
	label  string
	attrs  map[string]string
}

// ToDot renders a trace as a Graphviz digraph: one vertex per visited position (and per
// cut-off), with edges from each expanded position to its children.
func ToDot(events []Event) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		return "", errors.WithStack(err)
	}
	if err := g.SetDir(true); err != nil {
		return "", errors.WithStack(err)
	}

	var nodes []*traceNode
	var open []*traceNode // open[level] is the expanded position at that level
	for i, ev := range events {
		switch ev.Kind {
		case Child:
			continue
		case Exit:
			if ev.Level < len(open) {
				open[ev.Level].label += fmt.Sprintf("\n= %v", ev.Value)
				open = open[:ev.Level]
			}
			continue
		}

		n := &traceNode{
			id:    fmt.Sprintf("n%d", i),
			attrs: map[string]string{"fontname": "Monaco"},
		}
		switch ev.Kind {
		case Prune:
			n.label = fmt.Sprintf("✂ a=%v b=%v", ev.Alpha, ev.Beta)
			n.attrs["shape"] = "plaintext"
			n.attrs["fontcolor"] = "red"
		case Enter:
			side := "MIN"
			if ev.Maximizing {
				side = "MAX"
			}
			n.label = fmt.Sprintf("%s col=%s", side, columnString(ev.Column))
			n.attrs["shape"] = "box"
		default:
			n.label = fmt.Sprintf("%v col=%s\n%v", ev.Kind, columnString(ev.Column), ev.Value)
			n.attrs["shape"] = "ellipse"
		}
		if p := ev.Level - 1; p >= 0 && p < len(open) {
			n.parent = open[p].id
		}
		nodes = append(nodes, n)

		if ev.Kind == Enter && ev.Level <= len(open) {
			open = append(open[:ev.Level], n)
		}
	}

	for _, n := range nodes {
		n.attrs["label"] = strconv.Quote(n.label)
		if err := g.AddNode("G", n.id, n.attrs); err != nil {
			return "", errors.Wrapf(err, "Unable to add node %v", n.id)
		}
		if n.parent == "" {
			continue
		}
		if err := g.AddEdge(n.parent, n.id, true, nil); err != nil {
			return "", errors.Wrapf(err, "Unable to add edge %v -> %v", n.parent, n.id)
		}
	}
	return g.String(), nil
}
