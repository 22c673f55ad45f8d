package store

import (
	"context"
)

// TableCount is the number of rows held by one table.
type TableCount struct {
	Table string
	Rows  int64
}

// CountRows returns the row count of every ETL table, in load order.
func CountRows(ctx context.Context, db DBTX) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(Tables))
	for _, table := range Tables {
		// Table names come from the fixed Tables list.
		var n int64
		if err := db.QueryRowContext(ctx, "SELECT COUNT(1) FROM "+table).Scan(&n); err != nil {
			return nil, storageErr("count", table, err)
		}
		counts = append(counts, TableCount{Table: table, Rows: n})
	}
	return counts, nil
}
