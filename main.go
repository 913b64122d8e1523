// Package main is the entry point of the grauman CLI.
package main

import (
	"github.com/grauman/grauman/cmd"
	"github.com/grauman/grauman/config"
	"github.com/grauman/grauman/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
