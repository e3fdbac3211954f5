package artifact

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xraph/simflow"
)

// Entry records one produced artifact.
type Entry struct {
	// Step is the name of the producing step ("<stage>.<operation>").
	Step string `json:"step"`
	// Path is the produced file path.
	Path string `json:"path"`
	// Kind tags the artifact's role; KindUnknown for legacy entries.
	Kind Kind `json:"kind,omitempty"`
}

// Registry is an insertion-ordered map from producing step name to
// artifact path. It is mutated only by the single execution goroutine
// of a run and needs no locking.
type Registry struct {
	entries []Entry
	index   map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Put records the artifact produced by a step. A second Put for the
// same step name replaces the entry in place, keeping its original
// position in the completion order.
func (r *Registry) Put(step, path string, kind Kind) {
	if i, ok := r.index[step]; ok {
		r.entries[i].Path = path
		r.entries[i].Kind = kind
		return
	}
	r.index[step] = len(r.entries)
	r.entries = append(r.entries, Entry{Step: step, Path: path, Kind: kind})
}

// Get returns the artifact path recorded for a step name.
func (r *Registry) Get(step string) (string, bool) {
	i, ok := r.index[step]
	if !ok {
		return "", false
	}
	return r.entries[i].Path, true
}

// Len returns the number of recorded artifacts.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns a copy of all entries in completion order.
func (r *Registry) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Resolve locates the artifact a consumer of the given kind should use,
// scanning entries in completion order and returning the first match of:
//
//  1. an entry explicitly tagged with the kind,
//  2. an entry whose producing-step name conventionally emits the kind
//     (legacy), or
//  3. an entry whose file extension belongs to the kind's expected set
//     (legacy).
//
// Resolution does not check that the path exists on disk; that is the
// consuming stage's responsibility.
func (r *Registry) Resolve(kind Kind) (string, error) {
	for _, e := range r.entries {
		if e.Kind != KindUnknown && e.Kind == kind {
			return e.Path, nil
		}
	}

	for _, e := range r.entries {
		if nameMatch(kind, e.Step) {
			return e.Path, nil
		}
	}

	exts := kind.Extensions()
	for _, e := range r.entries {
		if slices.Contains(exts, strings.ToLower(filepath.Ext(e.Path))) {
			return e.Path, nil
		}
	}

	return "", fmt.Errorf("no %s artifact registered: %w", kind, simflow.ErrArtifactNotFound)
}
