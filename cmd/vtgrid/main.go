// Command vtgrid runs a program on a pseudo terminal headlessly and reports
// the grid it drew.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
