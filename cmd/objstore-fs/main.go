package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/systemshift/objstore-fs/internal/fuse"
	"github.com/systemshift/objstore-fs/internal/manifest"
	"github.com/systemshift/objstore-fs/internal/script"
	"github.com/systemshift/objstore-fs/internal/store"
)

func main() {
	var (
		seedPath   string
		exportPath string
		mountpoint string
		debug      bool
		quiet      bool
	)

	flag.StringVar(&seedPath, "seed", "", "Command script to replay into the store (required)")
	flag.StringVar(&exportPath, "export", "", "Write a JSON manifest of the store to this path")
	flag.StringVar(&mountpoint, "mount", "", "FUSE mount point for a read-only view")
	flag.BoolVar(&debug, "debug", false, "Enable FUSE debug logging")
	flag.BoolVar(&quiet, "quiet", false, "Do not log individual script steps")
	flag.Parse()

	if seedPath == "" {
		log.Fatal("objstore-fs: --seed is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := seed(ctx, seedPath, quiet)
	if err != nil {
		log.Fatalf("objstore-fs: %v", err)
	}

	if exportPath != "" {
		if err := manifest.Build(s).WriteFile(exportPath); err != nil {
			log.Fatalf("objstore-fs: export manifest: %v", err)
		}
		log.Printf("objstore-fs: wrote manifest to %s", exportPath)
	}

	if mountpoint == "" {
		return
	}

	if err := os.MkdirAll(mountpoint, 0755); err != nil {
		log.Fatalf("objstore-fs: create mountpoint: %v", err)
	}

	log.Printf("objstore-fs: mounting at %s", mountpoint)
	server, err := fuse.MountFS(mountpoint, fuse.NewView(s), debug)
	if err != nil {
		log.Fatalf("objstore-fs: mount failed: %v", err)
	}

	go func() {
		<-ctx.Done()
		log.Println("objstore-fs: shutting down...")
		if err := server.Unmount(); err != nil {
			log.Printf("objstore-fs: unmount: %v", err)
		}
	}()

	log.Printf("objstore-fs: ready (pid %d)", os.Getpid())
	server.Wait()
	log.Println("objstore-fs: stopped")
}

// seed builds a store by replaying the script at path.
func seed(ctx context.Context, path string, quiet bool) (*store.ObjectStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s := store.New()
	steps, err := script.Run(ctx, s, f)
	if !quiet {
		for _, st := range steps {
			log.Printf("objstore-fs: %s:%d %s -> %s", path, st.Line, st.Command, st.Result)
		}
	}
	if err != nil {
		return nil, err
	}
	log.Printf("objstore-fs: replayed %d commands, current branch %s", len(steps), s.Branch().Current().Name())
	return s, nil
}
