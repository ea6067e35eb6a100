// Command msbin-pack reads textual SOAP/XML from stdin or a file and writes
// the equivalent msbin1 binary encoding to stdout.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/b71729/msbin1"
)

var baseFile = filepath.Base(os.Args[0])

func check(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", baseFile, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("usage: %s [file]\n", baseFile)
	os.Exit(1)
}

func main() {
	msbin.GetConfig()
	if len(os.Args) == 2 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		usage()
	}

	src := os.Stdin
	if len(os.Args) == 2 {
		f, err := os.Open(os.Args[1])
		check(err)
		defer f.Close()
		src = f
	}

	tree, err := msbin.ParseXML(src)
	check(err)

	err = msbin.WriteBinary(os.Stdout, tree)
	check(err)
}
