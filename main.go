package main

import (
	"os"

	"github.com/kzaag/xmap/cmn"
	"github.com/kzaag/xmap/target"
)

func main() {

	var c *cmn.Config
	var err error

	/* read user parameters */
	args := target.NewArgsFromCli()

	/*
		parse configuration file
	*/
	if c, err = cmn.ConfigNewFromPath(args.ConfigPath); err != nil {
		cmn.CndPrintError(args.Raw, err)
		os.Exit(1)
	}

	if err = target.RunFromConfig(c, args); err != nil {
		cmn.CndPrintError(args.Raw, err)
		os.Exit(1)
	}
}
