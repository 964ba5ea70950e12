package main

import (
	"os"

	"github.com/basebase-ai/basebase-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
