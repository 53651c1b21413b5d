// Command packview inspects packed buffer snapshots.
//
// Usage:
//
//	packview [snapshot-file]          interactive inspector
//	packview info <snapshot-file>     print the header and layout
//	packview demo <snapshot-file>     write a generated demo snapshot
//
// Without a file the inspector shows a generated demo buffer.
package main

import (
	"os"

	"github.com/arloliu/packbuf/cmd/packview/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
