// Package live turns store mutations into pushed snapshots.
//
// Every write goes through Hub.Mutate, which serializes writers per table,
// appends to the table's mutation log and recomputes every registered query
// that reads from an affected table before the table lock is released. That
// gives observers a strictly ordered sequence of whole snapshots.
//
// Queries are hot, multicast and replay the latest snapshot:
//
//	sub, err := live.Observe(ctx, hub, "items/all", []live.Table{live.TableItems}, loadAll)
//	if err != nil {
//	    return err
//	}
//	defer sub.Close()
//
//	for items := range sub.Updates() {
//	    render(items)
//	}
//
// Snapshots are shared between subscribers and must be treated as read-only.
// Load functions must not call Hub.Mutate.
package live
