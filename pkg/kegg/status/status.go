// Package status declares error constants returned by the kegg
// package.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies with consumers of pkg/kegg.
package status

import "github.com/omicsdesk/genomaps/pkg/errors"

var (
	// ErrDataDir indicates that the KEGG data directory or one of its
	// expected files cannot be read
	ErrDataDir = errors.New("KEGG data directory not usable")

	// ErrIndexFormat indicates a malformed pathway index file
	ErrIndexFormat = errors.New("malformed pathway index")

	// ErrPattern indicates an invalid pathway number pattern
	ErrPattern = errors.New("invalid pathway number pattern")
)
