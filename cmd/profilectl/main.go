// Command profilectl compiles YAML profile definitions into Apple
// configuration profile documents.
package main

import "github.com/mesh-intelligence/profileforge/internal/cli"

func main() {
	cli.Execute()
}
