// Command diskmap scans a directory and lays its contents out as a treemap.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/idelchi/diskmap/internal/cli"
)

// version is the application version, set via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.New(version).Execute(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
