//go:build fuse

package main

import (
	"fmt"
	"os"

	gofs "github.com/hanwen/go-fuse/v2/fs"

	"github.com/paulo-raca/blobfs"
)

func runMount(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing BLOB or MOUNTPOINT")
	}
	blobPath, mountpoint := args[0], args[1]

	raw, err := os.ReadFile(blobPath)
	if err != nil {
		return fmt.Errorf("failed to read blob: %w", err)
	}

	l := blobfs.NewLoader(raw)
	fmt.Printf("Mounted %s at %s (ctrl-C to stop)\n", blobPath, mountpoint)
	return blobfs.Mount(l, mountpoint, &gofs.Options{})
}
