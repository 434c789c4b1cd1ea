package main

import (
	"os"

	"github.com/cosmos/ibc-proxy/cmd/proxyd/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
