// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package upload holds the pending reference documents for a conversation
// that has not been created yet.
//
// The set belongs to the create dialog, not to any conversation: it is
// cleared on successful creation or on dialog cancellation. Constraints
// (PDF only, at most five files) are enforced at selection time here and
// again at submit time by the backend client, as defense in depth against
// a changed selection.
package upload

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/studybuddy-tui/internal/backend"
)

// MaxFiles is the selection-time cap on pending documents. It mirrors
// backend.MaxUploadFiles so the two layers cannot drift silently apart.
const MaxFiles = backend.MaxUploadFiles

// =============================================================================
// RESULT TYPE
// =============================================================================

// AddResult reports what happened to one selection attempt.
type AddResult struct {
	Added       int // files accepted into the set
	SkippedType int // rejected: not a PDF
	SkippedFull int // rejected: set already at MaxFiles
}

// LimitHit returns true if any file was rejected for capacity.
func (r AddResult) LimitHit() bool {
	return r.SkippedFull > 0
}

// =============================================================================
// PENDING SET
// =============================================================================

// PendingSet is the ordered list of files selected for a not-yet-created
// conversation. Order is selection order; capacity is MaxFiles.
type PendingSet struct {
	paths []string
}

// NewPendingSet creates an empty pending set.
func NewPendingSet() *PendingSet {
	return &PendingSet{}
}

// Add filters the given paths (PDF only) and appends as many as capacity
// allows, preserving selection order.
func (p *PendingSet) Add(paths ...string) AddResult {
	var result AddResult

	for _, path := range paths {
		if !IsPDF(path) {
			result.SkippedType++
			continue
		}
		if len(p.paths) >= MaxFiles {
			result.SkippedFull++
			continue
		}
		p.paths = append(p.paths, path)
		result.Added++
	}

	return result
}

// Remove drops the file at the given index. Out-of-range indexes are
// ignored.
func (p *PendingSet) Remove(i int) {
	if i < 0 || i >= len(p.paths) {
		return
	}
	p.paths = append(p.paths[:i], p.paths[i+1:]...)
}

// Clear empties the set. Called on successful creation and on dialog
// cancellation.
func (p *PendingSet) Clear() {
	p.paths = nil
}

// Len returns the number of pending files.
func (p *PendingSet) Len() int {
	return len(p.paths)
}

// IsFull returns true when no more files can be added.
func (p *PendingSet) IsFull() bool {
	return len(p.paths) >= MaxFiles
}

// Names returns the base names of the pending files, in order.
func (p *PendingSet) Names() []string {
	names := make([]string, 0, len(p.paths))
	for _, path := range p.paths {
		names = append(names, filepath.Base(path))
	}
	return names
}

// Open opens every pending file for submission. On any open failure the
// already-opened files are closed and the error is returned; the set
// itself is left intact so the user can retry.
func (p *PendingSet) Open() ([]backend.File, func(), error) {
	files := make([]backend.File, 0, len(p.paths))
	var closers []*os.File

	closeAll := func() {
		for _, f := range closers {
			f.Close()
		}
	}

	for _, path := range p.paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, f)
		files = append(files, backend.File{Name: filepath.Base(path), Reader: f})
	}

	return files, closeAll, nil
}

// =============================================================================
// TYPE CHECK
// =============================================================================

// IsPDF reports whether a path looks like a PDF document. The extension
// check mirrors the browser-side MIME filter of the original client; the
// backend does its own validation during ingestion.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
