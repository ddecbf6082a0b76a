package refstore

import (
	"fmt"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// PrintStoreStatus prints reference store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	if status.Edition != "" {
		fmt.Printf("Synced Edition: %s\n", status.Edition)
	}
	fmt.Println("Table Sizes:")
	for _, table := range []string{taxonomyStoreTable, indicatorStoreTable, weightStoreTable, barrierStoreTable, runStoreTable} {
		fmt.Printf("  %s: %d rows\n", table, status.TableCounts[table])
	}
	if status.SizeEstimate > 0 {
		fmt.Printf("Database Size: %d bytes\n", status.SizeEstimate)
	}
}
