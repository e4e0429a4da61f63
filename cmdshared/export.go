package cmdshared

import (
	"errors"
	"fmt"
	"os"

	"github.com/horizr/horizr/core"
)

var stateMessages = map[core.ExportState]string{
	core.StateGenerating: "Generating %s...",
	core.StateZipping:    "Zipping %s...",
	core.StateCleaning:   "Removing %s...",
}

// RunExportOrExit runs an export and prints its progress. It exits when a stage fails.
func RunExportOrExit(run *core.ExportRun) {
	run.OnState = func(state core.ExportState) {
		if msg, ok := stateMessages[state]; ok {
			fmt.Printf(msg+"\n", run.Dir)
		}
	}
	if err := run.Run(); err != nil {
		var precondition *core.PreconditionError
		if errors.As(err, &precondition) {
			fmt.Println(precondition.Error())
		} else {
			fmt.Printf("Export failed: %s\n", err)
		}
		os.Exit(1)
	}
	if run.Zip {
		fmt.Printf("Modpack exported to %s\n", run.ZipPath)
	} else if !run.Clean {
		fmt.Printf("Modpack exported to %s\n", run.Dir)
	} else {
		fmt.Println("Done.")
	}
}
