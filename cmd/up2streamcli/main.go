package main

import (
	"github.com/robotalks/up2stream/pkg/cli/sh"
	"github.com/robotalks/up2stream/pkg/config"

	_ "github.com/robotalks/up2stream/pkg/cli/cmds/all"
)

//go-build: CGO_ENABLED=0

func init() {
	config.SetupFlags()
}

func main() {
	sh.Main()
}
