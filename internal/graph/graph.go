// Package graph turns a catalog into a clustered directed graph: one OSSEM
// cluster holding every standard name, one cluster per product holding its
// field names, and an edge from each product field to the standard name it
// maps onto.
//
// The package owns only the node, edge and cluster model. Layout and image
// generation belong to Graphviz.
package graph

import (
	"github.com/itsmostafa/ossemdict/internal/catalog"
)

// OSSEMCluster names the cluster of standard-name nodes.
const OSSEMCluster = "OSSEM"

// Options controls graph construction.
type Options struct {
	// CollapseSameName drops rows whose field is already named like the
	// standard name.
	CollapseSameName bool

	// DeduplicateEdges records each (field, standard name) edge once per
	// product and asks the renderer to merge parallel edges.
	DeduplicateEdges bool
}

// DefaultOptions matches the historical rendering defaults.
func DefaultOptions() Options {
	return Options{CollapseSameName: true, DeduplicateEdges: true}
}

// Node is a graph node. IDs are unique across the graph; labels are the
// names shown to the reader.
type Node struct {
	ID    string
	Label string
}

// Cluster is a named group of nodes.
type Cluster struct {
	Name  string
	Nodes []Node

	prefix string
	seen   map[string]bool
}

func newCluster(name, prefix string) *Cluster {
	return &Cluster{Name: name, prefix: prefix, seen: make(map[string]bool)}
}

// add registers label in the cluster once and returns its node.
func (c *Cluster) add(label string) Node {
	n := Node{ID: c.prefix + label, Label: label}
	if !c.seen[n.ID] {
		c.seen[n.ID] = true
		c.Nodes = append(c.Nodes, n)
	}
	return n
}

// Edge is a directed edge from a product field node to a standard-name node.
type Edge struct {
	From Node
	To   Node
}

// Graph is the clustered node and edge description handed to a renderer.
type Graph struct {
	// OSSEM holds the standard-name nodes.
	OSSEM *Cluster
	// Products holds one cluster per product, in first-seen order.
	Products []*Cluster
	Edges    []Edge
	// Concentrate asks the renderer to merge parallel edges.
	Concentrate bool
}

// Clusters returns the OSSEM cluster followed by the product clusters.
func (g *Graph) Clusters() []*Cluster {
	return append([]*Cluster{g.OSSEM}, g.Products...)
}

// Build walks the catalog's summary rows in catalog order. It fails, like
// SummaryRows, when a record has no Standard Name; filter by standard name
// first to drop such records.
func Build(c *catalog.Catalog, opts Options) (*Graph, error) {
	rows, err := c.SummaryRows()
	if err != nil {
		return nil, err
	}

	g := &Graph{
		OSSEM:       newCluster(OSSEMCluster, "ossem/"),
		Concentrate: opts.DeduplicateEdges,
	}

	var current *Cluster
	edges := make(map[Edge]bool)

	for _, row := range rows {
		if current == nil || current.Name != row.Product {
			current = newCluster(row.Product, "product/"+row.Product+"/")
			g.Products = append(g.Products, current)
		}

		if opts.CollapseSameName && row.Field == row.StandardName {
			continue
		}

		to := g.OSSEM.add(row.StandardName)
		from := current.add(row.Field)
		e := Edge{From: from, To: to}

		if opts.DeduplicateEdges {
			if edges[e] {
				continue
			}
			edges[e] = true
		}
		g.Edges = append(g.Edges, e)
	}

	// A product whose rows were all collapsed has nothing to draw.
	products := g.Products[:0]
	for _, p := range g.Products {
		if len(p.Nodes) > 0 {
			products = append(products, p)
		}
	}
	g.Products = products

	return g, nil
}
