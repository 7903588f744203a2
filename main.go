package main

import (
	"os"

	"docflow/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
