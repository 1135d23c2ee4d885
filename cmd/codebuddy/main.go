package main

import "github.com/emiliopalmerini/codebuddy/internal/cli"

func main() {
	cli.Execute()
}
