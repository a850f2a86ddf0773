package main

import (
	"fmt"
	"os"

	"finflow/cmd/categorize"
	"finflow/cmd/export"
	"finflow/cmd/flows"
	"finflow/cmd/ingest"
	"finflow/cmd/learn"
	"finflow/cmd/parse"
	"finflow/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(flows.Cmd)
	root.Cmd.AddCommand(learn.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
