// Command score is the command-line front end to the compatibility scorer.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	a := &app{}
	err := fang.Execute(ctx, NewRootCmd(version, a))
	a.Close()
	stop()
	if err != nil {
		os.Exit(1)
	}
}
