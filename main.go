// Package main is the entry point for lyra.
package main

import (
	"github.com/lyra-cli/lyra/cmd"
	"github.com/lyra-cli/lyra/config"
	"github.com/lyra-cli/lyra/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
