// Package status declares error constants returned by the mapper
// package.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between mapper and its
// consumers.
package status

import "github.com/omicsdesk/genomaps/pkg/errors"

var (
	// Sentinel errors returned by pathway map drawing

	// ErrConfig indicates an invalid drawing configuration
	ErrConfig = errors.New("invalid pathway map configuration")

	// ErrReservedColor indicates a highlight color that the renderer
	// keeps for backgrounds and text
	ErrReservedColor = errors.New("reserved highlight color")

	// ErrOverwrite indicates output files that already exist while
	// overwriting is disabled
	ErrOverwrite = errors.New("output files would be overwritten")

	// ErrUnknownSource indicates a requested source name that is not
	// among the drawn databases or genomes
	ErrUnknownSource = errors.New("unknown source name")

	// ErrDraw indicates a failure while rendering map files
	ErrDraw = errors.New("pathway map drawing failed")
)
