package main

import (
	"fmt"

	"github.com/google/renameio"

	"github.com/paulo-raca/blobfs"
)

type createArgs struct {
	src, dest      string
	format         encodeFormat
	compress       bool
	watch          bool
	prefix, suffix string
}

func parseCreateArgs(args []string) (*createArgs, error) {
	c := &createArgs{format: formatRaw}

	var positional []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("--format requires a value")
			}
			c.format = encodeFormat(args[i])
		case "--compress":
			c.compress = true
		case "--watch":
			c.watch = true
		case "--prefix":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("--prefix requires a value")
			}
			c.prefix = args[i]
		case "--suffix":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("--suffix requires a value")
			}
			c.suffix = args[i]
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) < 2 {
		return nil, fmt.Errorf("missing SRC or DEST")
	}
	c.src, c.dest = positional[0], positional[1]
	return c, nil
}

func runCreate(args []string) error {
	c, err := parseCreateArgs(args)
	if err != nil {
		return err
	}

	doCreate := func() error {
		fmt.Println("Creating BlobFS...")

		tree, err := blobfs.FromOSPath(c.src)
		if err != nil {
			return fmt.Errorf("failed to scan %q: %w", c.src, err)
		}

		var opts []blobfs.CompileOption
		if c.compress {
			opts = append(opts, blobfs.WithCompression(true))
		}
		raw, err := blobfs.Compile(tree, opts...)
		if err != nil {
			return fmt.Errorf("failed to compile blob: %w", err)
		}

		out, err := encode(raw, c.format)
		if err != nil {
			return err
		}

		if err := writeAtomic(c.dest, c.prefix, out, c.suffix); err != nil {
			return err
		}

		fmt.Printf("BlobFS created at %s, size=%d\n", c.dest, len(raw))
		return nil
	}

	if err := doCreate(); err != nil {
		return err
	}

	if c.watch {
		return watchAndRecreate(c.src, doCreate)
	}
	return nil
}

// writeAtomic writes prefix, blob and suffix to dest as a single atomic
// replace, so a reader can never observe a half-written file.
func writeAtomic(dest, prefix string, blob []byte, suffix string) error {
	out, err := renameio.TempFile("", dest)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer out.Cleanup()

	if prefix != "" {
		if _, err := out.Write([]byte(prefix)); err != nil {
			return err
		}
	}
	if _, err := out.Write(blob); err != nil {
		return err
	}
	if suffix != "" {
		if _, err := out.Write([]byte(suffix)); err != nil {
			return err
		}
	}

	return out.CloseAtomicallyReplace()
}
