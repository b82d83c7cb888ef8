package main

import (
	"github.com/fabriziocosta/SMoD/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
