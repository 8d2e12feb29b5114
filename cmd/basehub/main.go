// Command basehub runs the BaseHub database administration service.
package main

import "github.com/basehub-labs/basehub/internal/cli"

func main() {
	cli.Execute()
}
