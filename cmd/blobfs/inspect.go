package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/paulo-raca/blobfs"
)

func openBlob(path string) (*blobfs.Loader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return blobfs.NewLoader(data), nil
}

func runLs(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("missing blob path")
	}
	blobPath := args[0]
	dirPath := "."
	if len(args) > 1 {
		dirPath = args[1]
	}

	l, err := openBlob(blobPath)
	if err != nil {
		return err
	}

	if dirPath != "." {
		info, err := fs.Stat(l, dirPath)
		if err != nil {
			return fmt.Errorf("path %q not found: %w", dirPath, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%q is not a directory", dirPath)
		}
	}

	entries, err := fs.ReadDir(l, dirPath)
	if err != nil {
		return fmt.Errorf("failed to read directory %q: %w", dirPath, err)
	}

	for _, entry := range entries {
		displayPath := entry.Name()
		if dirPath != "." {
			displayPath = dirPath + "/" + entry.Name()
		}

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to stat %q: %s\n", displayPath, err)
			continue
		}
		printEntry(displayPath, info)
	}
	return nil
}

func printEntry(path string, info fs.FileInfo) {
	typeChar := "-"
	if info.IsDir() {
		typeChar = "d"
	}
	size := fmt.Sprintf("%8d", info.Size())
	if info.IsDir() {
		size = "       -"
	}
	fmt.Printf("%s%s %s %s\n", typeChar, info.Mode().String()[1:], size, path)
}

func runCat(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing blob path or target file")
	}
	blobPath, filePath := args[0], args[1]

	l, err := openBlob(blobPath)
	if err != nil {
		return err
	}

	data, err := fs.ReadFile(l, filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", filePath, err)
	}

	_, err = os.Stdout.Write(data)
	return err
}

func runInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("missing blob path")
	}
	blobPath := args[0]

	raw, err := os.ReadFile(blobPath)
	if err != nil {
		return fmt.Errorf("failed to read blob: %w", err)
	}
	l := blobfs.NewLoader(raw)

	var fileCount, dirCount int
	countEntries(l, ".", &fileCount, &dirCount)

	fmt.Println("BlobFS Archive Information")
	fmt.Println("==========================")
	fmt.Printf("Total size:       %d bytes\n", len(raw))
	fmt.Printf("Directories:      %d\n", dirCount)
	fmt.Printf("Regular files:    %d\n", fileCount)
	return nil
}

func countEntries(fsys fs.FS, dir string, fileCount, dirCount *int) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		childPath := entry.Name()
		if dir != "." {
			childPath = dir + "/" + entry.Name()
		}
		if entry.IsDir() {
			*dirCount++
			countEntries(fsys, childPath, fileCount, dirCount)
		} else {
			*fileCount++
		}
	}
}
