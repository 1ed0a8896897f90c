// Package store keeps processed documents in a SQLite database
// (modernc.org/sqlite, no cgo).
//
// Each [Store.Save] creates a row in documents and one row per component
// in components, holding the component type, page, bounding box, text and
// its full JSON form:
//
//	st, err := store.Open("layoutkit.db")
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//	id, err := st.Save(ctx, "invoice.pdf", comps)
//	records, err := st.Components(ctx, id)
package store
