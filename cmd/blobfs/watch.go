package main

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchAndRecreate recursively watches src and re-runs rebuild on every
// create, write, remove or rename event (chmod-only events are ignored),
// the Go analog of the Python CLI's watchdog.observers.Observer paired
// with a FileSystemEventHandler whose on_any_event just calls do_create
// again. rebuild stays synchronous and
// stateless; only the triggering loop lives here.
func watchAndRecreate(src string, rebuild func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	if err := addRecursive(w, src); err != nil {
		return err
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)

	fmt.Printf("Watching %s for changes (ctrl-C to stop)...\n", src)
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if err := rebuild(); err != nil {
				fmt.Fprintf(os.Stderr, "rebuild failed: %s\n", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %s\n", err)

		case <-sigc:
			return nil
		}
	}
}

// addRecursive registers src, and every directory beneath it, with w —
// fsnotify watches are not recursive on their own.
func addRecursive(w *fsnotify.Watcher, src string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
