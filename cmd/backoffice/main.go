// Command backoffice runs the storefront administration API and CLI.
package main

import "github.com/mesh-intelligence/backoffice/internal/cli"

func main() {
	cli.Execute()
}
