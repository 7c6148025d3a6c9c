//go:build !fuse

package main

import "fmt"

func runMount(args []string) error {
	return fmt.Errorf("mount support requires building with -tags fuse")
}
