package graph

import (
	"fmt"
	"io"
	"os"

	"github.com/emicklei/dot"
)

// ToDOT converts the model into a Graphviz graph: left-to-right layout, a
// filled yellow OSSEM cluster with rounded nodes and a filled gray cluster
// per product.
func ToDOT(g *Graph) *dot.Graph {
	root := dot.NewGraph(dot.Directed)
	root.Attr("rankdir", "LR")
	if g.Concentrate {
		root.Attr("concentrate", "true")
	}

	nodes := make(map[string]dot.Node)

	ossem := root.Subgraph(OSSEMCluster, dot.ClusterOption{})
	ossem.Attr("label", OSSEMCluster)
	ossem.Attr("color", "yellow")
	ossem.Attr("style", "filled")
	for _, n := range g.OSSEM.Nodes {
		nodes[n.ID] = ossem.Node(n.ID).Label(n.Label).Attr("shape", "box").Attr("style", "rounded,filled")
	}

	for _, p := range g.Products {
		// Distinct from the OSSEM cluster ID even for a product named OSSEM.
		sub := root.Subgraph("product/"+p.Name, dot.ClusterOption{})
		sub.Attr("label", p.Name)
		sub.Attr("color", "gray")
		sub.Attr("style", "filled")
		for _, n := range p.Nodes {
			nodes[n.ID] = sub.Node(n.ID).Label(n.Label)
		}
	}

	for _, e := range g.Edges {
		root.Edge(nodes[e.From.ID], nodes[e.To.ID])
	}

	return root
}

// WriteDOT writes the graph in DOT format.
func WriteDOT(w io.Writer, g *Graph) error {
	_, err := io.WriteString(w, ToDOT(g).String())
	return err
}

// WriteDOTFile writes the graph in DOT format to path.
func WriteDOTFile(path string, g *Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create graph file: %w", err)
	}
	defer f.Close()

	if err := WriteDOT(f, g); err != nil {
		return fmt.Errorf("failed to write graph file: %w", err)
	}
	return f.Close()
}
