// Package store implements reconcile.Model over the GORM column tables.
//
// A sync pass runs in one SQL transaction opened by Store.Begin. Each row's
// mutations run inside Tx.Atomic, which GORM maps to a savepoint, so a row
// that fails halfway leaves nothing behind.
//
// # Usage
//
//	st := store.New(db)
//	if err := st.Migrate(ctx); err != nil {
//	    return err
//	}
//	run, err := reconcile.NewEngine(st, logger).SyncFile(ctx, "columns.csv", reconcile.Options{})
package store
