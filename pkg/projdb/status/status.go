// Package status declares error constants returned by the projdb
// package.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between projdb and its
// consumers.
package status

import "github.com/omicsdesk/genomaps/pkg/errors"

var (
	// Sentinel errors returned by project database accessors

	// ErrNotExists indicates that the database file does not exist or
	// cannot be read
	ErrNotExists = errors.New("database file not accessible")

	// ErrNotDatabase indicates a file that is not a usable project
	// database (no self table)
	ErrNotDatabase = errors.New("not a project database")

	// ErrDBType indicates a database of an unexpected flavor
	ErrDBType = errors.New("unexpected database type")

	// ErrQuery indicates a failed query against a project database
	ErrQuery = errors.New("database query failed")

	// ErrMissingAnnotation indicates a database without the required
	// functional annotation source
	ErrMissingAnnotation = errors.New("database lacks KOfam annotations")

	// ErrDuplicateProject indicates two contigs databases sharing a
	// project name
	ErrDuplicateProject = errors.New("duplicate project name across contigs databases")

	// ErrUnknownGenome indicates a genome name absent from storage
	ErrUnknownGenome = errors.New("genome not found in storage")

	// ErrOrderNotFound indicates a missing item order
	ErrOrderNotFound = errors.New("item order not found in database")

	// ErrNoOrders indicates a database without any stored item order
	ErrNoOrders = errors.New("no item orders stored in database")

	// ErrExternalGenomes indicates a malformed external genomes file
	ErrExternalGenomes = errors.New("malformed external genomes file")
)
