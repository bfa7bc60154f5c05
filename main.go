// Copyright © 2026 The rexpr authors

package main

import "github.com/luthersystems/rexpr/cmd"

func main() {
	cmd.Execute()
}
