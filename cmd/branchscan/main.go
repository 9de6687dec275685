package main

import (
	"branchscan/cmd/branchscan/commands"
	"branchscan/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
