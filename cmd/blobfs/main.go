// Command blobfs creates and inspects BlobFS blobs.
package main

import (
	"fmt"
	"os"
)

const usage = `blobfs - BlobFS CLI tool

Usage:
  blobfs create SRC DEST [--format raw|c|py] [--compress] [--watch]
                          [--prefix STR] [--suffix STR]
                                             Compile SRC into a blob at DEST
  blobfs ls BLOB [PATH]                     List files in BLOB
  blobfs cat BLOB FILE                      Display contents of a file in BLOB
  blobfs info BLOB                          Display information about BLOB
  blobfs mount BLOB MOUNTPOINT              Mount BLOB over FUSE (build with -tags fuse)
  blobfs help                               Show this help message

Examples:
  blobfs create ./site ./site.blob --compress
  blobfs ls ./site.blob
  blobfs ls ./site.blob assets
  blobfs cat ./site.blob index.html
  blobfs info ./site.blob
`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "create":
		err = runCreate(args)
	case "ls":
		err = runLs(args)
	case "cat":
		err = runCat(args)
	case "info":
		err = runInfo(args)
	case "mount":
		err = runMount(args)
	case "help":
		fmt.Println(usage)
		return
	default:
		fmt.Printf("Error: Unknown command '%s'\n", cmd)
		fmt.Println(usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
