package projdb

import (
	"context"
	"sort"
	"strings"

	"github.com/omicsdesk/genomaps/pkg/projdb/status"
)

// Item order types as recorded in the item_orders table
const (
	OrderTypeNewick = "newick"
	OrderTypeBasic  = "basic"
)

// Order is a stored ordering of items: either a flat list or a
// hierarchical clustering serialized as a newick tree
type Order struct {
	// Name as stored; hierarchical clusterings are conventionally
	// named <name>:<distance>:<linkage>
	Name string

	// Distance and Linkage of a clustering order, empty otherwise
	Distance string
	Linkage  string

	// Type is "newick" or "basic"
	Type string

	// Data is the newick string or the comma-separated item list
	Data string
}

// BaseName is the order name stripped of distance and linkage
func (o Order) BaseName() string {
	if i := strings.IndexByte(o.Name, ':'); i >= 0 {
		return o.Name[:i]
	}
	return o.Name
}

// Items splits the data of a basic order; nil for newick orders
func (o Order) Items() []string {
	if o.Type != OrderTypeBasic {
		return nil
	}
	return splitCommaList(o.Data)
}

func newOrder(name, orderType, data string) Order {
	order := Order{Name: name, Type: orderType, Data: data}
	if fields := strings.Split(name, ":"); len(fields) == 3 {
		order.Distance = fields[1]
		order.Linkage = fields[2]
	}
	return order
}

// ItemOrders lists the orders stored in a pan or profile database,
// in storage order
func (db *DB) ItemOrders(ctx context.Context) ([]Order, error) {
	rows, err := db.sqldb.QueryContext(ctx,
		`SELECT name, type, data FROM item_orders ORDER BY rowid`)
	if err != nil {
		return nil, status.ErrQuery.WrapMessage(err, "%s", db.path)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var name, orderType, data string
		if err := rows.Scan(&name, &orderType, &data); err != nil {
			return nil, status.ErrQuery.Wrap(err)
		}
		orders = append(orders, newOrder(name, orderType, data))
	}
	if err := rows.Err(); err != nil {
		return nil, status.ErrQuery.Wrap(err)
	}
	if orders == nil {
		return nil, status.ErrNoOrders.WrapMessage(nil, "%s", db.path)
	}
	return orders, nil
}

// ItemOrder finds a stored order by its full name, or by base name
// when that is unambiguous. A not-found error lists the available
// names.
func (db *DB) ItemOrder(ctx context.Context, name string) (Order, error) {
	orders, err := db.ItemOrders(ctx)
	if err != nil {
		return Order{}, err
	}

	var baseMatches []Order
	for _, order := range orders {
		if order.Name == name {
			return order, nil
		}
		if order.BaseName() == name {
			baseMatches = append(baseMatches, order)
		}
	}
	if len(baseMatches) == 1 {
		return baseMatches[0], nil
	}

	available := make([]string, 0, len(orders))
	for _, order := range orders {
		available = append(available, order.Name)
	}
	sort.Strings(available)
	if len(baseMatches) > 1 {
		return Order{}, status.ErrOrderNotFound.WrapMessage(nil,
			"%q is ambiguous, use one of: %s", name, strings.Join(available, ", "))
	}
	return Order{}, status.ErrOrderNotFound.WrapMessage(nil,
		"%q (available: %s)", name, strings.Join(available, ", "))
}
