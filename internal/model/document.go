package model

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
)

// DocumentVersion identifies the JSON graph document format.
const DocumentVersion = "1.0"

// EdgeType distinguishes the two edge families of the graph document.
type EdgeType string

const (
	EdgeAssociation    EdgeType = "association"
	EdgeGeneralization EdgeType = "generalization"
)

// GraphDocument is the JSON form of the model.
type GraphDocument struct {
	Metadata GraphMetadata `json:"_metadata"`
	Nodes    []GraphNode   `json:"nodes"`
	Edges    []GraphEdge   `json:"edges"`
}

// GraphMetadata describes one conversion run.
type GraphMetadata struct {
	Version     string    `json:"version"`
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	NodeCount   int       `json:"node_count"`
	EdgeCount   int       `json:"edge_count"`
}

// GraphNode is one class with its properties.
type GraphNode struct {
	ID         string         `json:"id"`
	Superclass string         `json:"superclass,omitempty"`
	Properties []NodeProperty `json:"properties"`
}

// NodeProperty is one field of a node.
type NodeProperty struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Signed bool   `json:"signed,omitempty"`
}

// GraphEdge is one relationship between classes, referenced by name.
type GraphEdge struct {
	From         string   `json:"from"`
	To           string   `json:"to"`
	Type         EdgeType `json:"type"`
	Multiplicity string   `json:"multiplicity,omitempty"`
	DependsOn    string   `json:"depends_on,omitempty"`
}

// Document builds the JSON graph document for the model.
func (m *Model) Document() *GraphDocument {
	doc := &GraphDocument{
		Nodes: []GraphNode{},
		Edges: []GraphEdge{},
	}
	for _, c := range m.Classes {
		node := GraphNode{ID: c.Name, Superclass: c.Superclass, Properties: []NodeProperty{}}
		for _, p := range c.Properties {
			node.Properties = append(node.Properties, NodeProperty{Name: p.Name, Type: p.Type, Signed: p.Signed})
		}
		doc.Nodes = append(doc.Nodes, node)

		for _, a := range c.Associations {
			if a.Target == "" {
				continue
			}
			doc.Edges = append(doc.Edges, GraphEdge{
				From:         c.Name,
				To:           a.Target,
				Type:         EdgeAssociation,
				Multiplicity: a.Multiplicity,
				DependsOn:    a.DependsOn,
			})
		}
		if c.Superclass != "" {
			doc.Edges = append(doc.Edges, GraphEdge{From: c.Name, To: c.Superclass, Type: EdgeGeneralization})
		}
	}
	doc.Metadata = GraphMetadata{
		Version:     DocumentVersion,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		NodeCount:   len(doc.Nodes),
		EdgeCount:   len(doc.Edges),
	}
	return doc
}

// WriteJSON writes the indented JSON graph document.
func (m *Model) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m.Document())
}
