// Package main provides the entry point for the concilia CLI application.
package main

import (
	"concilia/cmd/ingest"
	"concilia/cmd/reconcile"
	"concilia/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(reconcile.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		root.Log.Fatal(err.Error())
	}
}
