package roadgraph

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// CSVLoader adapts a vertices.csv/edges.csv snapshot into NodeIterator and
// EdgeIterator, for local development and tests where the relational store
// the core is decoupled from (spec §3) isn't available. Grounded on the
// teacher's loader/csv_loader.go; kept to the standard library since the
// format is a pair of three-column flat files with no schema beyond what
// encoding/csv already parses.
type CSVLoader struct {
	VerticesPath string
	EdgesPath    string
}

// NewCSVLoader builds a loader over the given file paths.
func NewCSVLoader(verticesPath, edgesPath string) *CSVLoader {
	return &CSVLoader{VerticesPath: verticesPath, EdgesPath: edgesPath}
}

// Nodes returns a NodeIterator reading VerticesPath. Rows are expected as
// node_id,lon,lat with an optional header row (detected by a parse failure
// on the first row, which is then skipped rather than treated as an error).
func (l *CSVLoader) Nodes() NodeIterator {
	return func(yield func(Node) bool) {
		f, err := os.Open(l.VerticesPath)
		if err != nil {
			return
		}
		defer f.Close()

		reader := csv.NewReader(f)
		reader.FieldsPerRecord = 3

		first := true
		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				continue
			}

			node, ok := parseVertex(record)
			if !ok {
				if first {
					first = false

					continue
				}

				continue
			}
			first = false

			if !yield(node) {
				return
			}
		}
	}
}

// Edges returns an EdgeIterator reading EdgesPath. Rows are expected as
// start_id,end_id,length_m.
func (l *CSVLoader) Edges() EdgeIterator {
	return func(yield func(Edge) bool) {
		f, err := os.Open(l.EdgesPath)
		if err != nil {
			return
		}
		defer f.Close()

		reader := csv.NewReader(f)
		reader.FieldsPerRecord = 3

		first := true
		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				continue
			}

			edge, ok := parseEdge(record)
			if !ok {
				if first {
					first = false

					continue
				}

				continue
			}
			first = false

			if !yield(edge) {
				return
			}
		}
	}
}

func parseVertex(record []string) (Node, bool) {
	if len(record) != 3 {
		return Node{}, false
	}

	id, err := strconv.ParseUint(record[0], 10, 64)
	if err != nil {
		return Node{}, false
	}

	lon, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return Node{}, false
	}

	lat, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return Node{}, false
	}

	return Node{ID: id, Point: orb.Point{lon, lat}}, true
}

func parseEdge(record []string) (Edge, bool) {
	if len(record) != 3 {
		return Edge{}, false
	}

	startID, err := strconv.ParseUint(record[0], 10, 64)
	if err != nil {
		return Edge{}, false
	}

	endID, err := strconv.ParseUint(record[1], 10, 64)
	if err != nil {
		return Edge{}, false
	}

	lengthM, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return Edge{}, false
	}

	return Edge{StartID: startID, EndID: endID, LengthM: lengthM}, true
}

// ValidationError describes a CSV snapshot that produced zero usable rows,
// most likely a path typo rather than an empty graph.
type ValidationError struct {
	Path string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("roadgraph: no rows parsed from %s", e.Path)
}
