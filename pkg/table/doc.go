// Package table provides Controller, the generic list-state manager reused by
// every back-office list: it owns a fetched collection, a search query, and a
// page cursor, derives the visible page, and applies local mutations after the
// matching remote write has succeeded.
//
// Typical use:
//
//	ctl := table.Open(ctx, products.GetAll,
//	    table.WithItemsPerPage[types.Product](20),
//	    table.WithSearchKey(table.StringField(func(p types.Product) string { return p.Name })),
//	)
//	<-ctl.Ready()
//	ctl.SetSearchQuery("rose")
//	page := ctl.Page()
//
// Writes go through a resource service first; only a confirmed write is
// reflected locally:
//
//	if err := products.Delete(ctx, id); err != nil {
//	    return err
//	}
//	ctl.DeleteItem(func(p types.Product) bool { return p.ID == id })
package table
