// main holds the entry logic for the sbn CLI.
package main

import (
	"github.com/N4W-Facility/Toolkit-SbN-CAF/cmd"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/refstore"
)

// main is the entry point for the SbN prioritization toolkit.
func main() {
	err := cmd.Execute()
	refstore.CloseStore()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
