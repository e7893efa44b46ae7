package config

import (
	"context"
	"hash/crc64"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

var crcTable = crc64.MakeTable(crc64.ISO)

// Watch reloads path over base whenever it changes and passes every valid
// result to fn. Unparsable or invalid edits are logged and skipped. Watch
// blocks until ctx is done.
func Watch(ctx context.Context, path string, base *Config, fn func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace files by rename, so watch the directory.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	last := checksum(abs)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			sum := checksum(abs)
			if sum == last {
				continue
			}
			last = sum

			cfg, err := LoadOver(abs, base)
			if err != nil {
				log.Printf("config: reload %s: %v", abs, err)
				continue
			}
			if err := cfg.Validate(); err != nil {
				log.Printf("config: reload %s: %v", abs, err)
				continue
			}
			log.Printf("config: reloaded %s", abs)
			fn(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("config: watch error: %v", err)
		}
	}
}

func checksum(path string) uint64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	return crc64.Checksum(data, crcTable)
}
