// Command formctl checks form schema documents and replays interaction
// scripts against them, printing the resulting form view.
package main

import (
	"context"
	"os"

	"github.com/zoobzio/capitan"
)

func main() {
	err := newRootCmd().ExecuteContext(context.Background())
	capitan.Shutdown()
	if err != nil {
		os.Exit(1)
	}
}
