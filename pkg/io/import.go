package io

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/graph"
	"github.com/matzehuels/waypoint/pkg/httputil"
	"github.com/matzehuels/waypoint/pkg/observability"
)

// maxDocumentBytes bounds graph documents read from files and readers.
const maxDocumentBytes = 32 << 20

// ReadJSON decodes and validates a graph document from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "a", "name": "A"}, {"id": "b"}],
//	  "edges": [{"source": "a", "target": "b", "weight": 3}]
//	}
//
// ReadJSON returns a MALFORMED_GRAPH error if the JSON is invalid, a
// required field is missing, a weight is negative, ids collide, or an edge
// references an undeclared node. ReadJSON does not close r.
func ReadJSON(r io.Reader) (graph.Graph, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes+1))
	if err != nil {
		return graph.Graph{}, fmt.Errorf("read: %w", err)
	}
	if len(data) > maxDocumentBytes {
		return graph.Graph{}, errors.Malformed("document exceeds %d bytes", maxDocumentBytes)
	}
	return graph.Parse(data)
}

// ImportJSON reads the graph document at path.
//
// A missing file yields a FILE_NOT_FOUND error; decoding errors are the
// same as for [ReadJSON].
func ImportJSON(path string) (graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return graph.Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return graph.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Loader loads graph documents from files or URLs.
// The zero value uses http.DefaultClient and httputil.DefaultPolicy.
type Loader struct {
	Client *http.Client
	Policy httputil.Policy
}

// Load reads and validates the graph at source using the default [Loader].
func Load(ctx context.Context, source string) (graph.Graph, error) {
	return Loader{}.Load(ctx, source)
}

// LoadOrEmpty is like [Load] but returns [graph.Empty] alongside any error,
// so callers can keep serving in degraded mode.
func LoadOrEmpty(ctx context.Context, source string) (graph.Graph, error) {
	return Loader{}.LoadOrEmpty(ctx, source)
}

// Load reads and validates the graph at source.
func (l Loader) Load(ctx context.Context, source string) (graph.Graph, error) {
	start := time.Now()
	g, err := l.load(ctx, source)
	if err != nil {
		observability.Graph().OnGraphLoad(ctx, source, 0, 0, time.Since(start), err)
		return graph.Graph{}, err
	}
	observability.Graph().OnGraphLoad(ctx, source, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)
	return g, nil
}

// LoadOrEmpty is like Load but substitutes the empty graph on failure.
func (l Loader) LoadOrEmpty(ctx context.Context, source string) (graph.Graph, error) {
	g, err := l.Load(ctx, source)
	if err != nil {
		return graph.Empty(), err
	}
	return g, nil
}

func (l Loader) load(ctx context.Context, source string) (graph.Graph, error) {
	if err := errors.ValidateSource(source); err != nil {
		return graph.Graph{}, err
	}
	if !errors.IsRemote(source) {
		return ImportJSON(source)
	}

	policy := l.Policy
	if policy.Attempts == 0 {
		policy = httputil.DefaultPolicy
	}
	body, err := httputil.Get(ctx, l.Client, source, policy)
	if err != nil {
		return graph.Graph{}, err
	}
	return graph.Parse(body)
}
