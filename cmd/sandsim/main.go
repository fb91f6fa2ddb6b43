// Command sandsim runs the falling sand simulation headlessly, in a terminal
// or in a window.
package main

import "sandsim/internal/cli"

func main() {
	cli.Execute()
}
