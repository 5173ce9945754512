// Package status declares error constants returned by the kgml
// package.
package status

import "github.com/omicsdesk/genomaps/pkg/errors"

var (
	// ErrNotExists indicates that a KGML file cannot be opened
	ErrNotExists = errors.New("KGML file not readable")

	// ErrParse indicates a KGML document that does not decode
	ErrParse = errors.New("invalid KGML document")

	// ErrRender indicates a PDF rendering failure
	ErrRender = errors.New("map rendering failed")

	// ErrGrid indicates a failure assembling a map grid PDF
	ErrGrid = errors.New("map grid assembly failed")
)
