// Package ordering exports item orders stored in project databases.
package ordering

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/omicsdesk/genomaps/pkg/errors"
	"github.com/omicsdesk/genomaps/pkg/ordering/newick"
	"github.com/omicsdesk/genomaps/pkg/projdb"
)

// ErrOrderType indicates an order of a type this package cannot handle
var ErrOrderType = errors.New("unsupported item order type")

// Export writes an order in its flat file form: the tree string on a
// single line for newick orders, one item per line for basic orders.
func Export(w io.Writer, order projdb.Order) error {
	switch order.Type {
	case projdb.OrderTypeNewick:
		if _, err := fmt.Fprintln(w, strings.TrimSpace(order.Data)); err != nil {
			return err
		}
	case projdb.OrderTypeBasic:
		for _, item := range order.Items() {
			if _, err := fmt.Fprintln(w, item); err != nil {
				return err
			}
		}
	default:
		return ErrOrderType.WrapMessage(nil, "%q on order %q", order.Type, order.Name)
	}
	return nil
}

// ExportFile writes an order to a file, creating or truncating it
func ExportFile(fs afero.Fs, order projdb.Order, path string) error {
	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	if err := Export(f, order); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Summary describes a stored order for listings
type Summary struct {
	Name     string
	Distance string
	Linkage  string
	Type     string

	// NumItems is the leaf count of a newick order or the item count
	// of a basic order, -1 when the data cannot be parsed
	NumItems int
}

// Describe summarizes an order, counting its items
func Describe(order projdb.Order) Summary {
	summary := Summary{
		Name:     order.BaseName(),
		Distance: order.Distance,
		Linkage:  order.Linkage,
		Type:     order.Type,
		NumItems: -1,
	}
	switch order.Type {
	case projdb.OrderTypeNewick:
		if tree, err := newick.Parse(order.Data); err == nil {
			summary.NumItems = tree.NumLeaves()
		}
	case projdb.OrderTypeBasic:
		summary.NumItems = len(order.Items())
	}
	return summary
}
