// Command glprobe builds the shader programs listed in a manifest and
// reports their link status and resolved locations.
//
//	glprobe -manifest programs.hcl
//	glprobe -manifest programs.hcl -backend opengl -watch
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/gogpu/glprogram"
	"github.com/gogpu/glprogram/backend"
	_ "github.com/gogpu/glprogram/backend/opengl"
	_ "github.com/gogpu/glprogram/backend/soft"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		manifestPath = flag.String("manifest", "programs.hcl", "program manifest file")
		backendName  = flag.String("backend", backend.BackendSoft, "backend: soft or opengl")
		verbose      = flag.Bool("v", false, "log debug output")
		watch        = flag.Bool("watch", false, "probe again whenever the manifest or a stage source changes")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	glprogram.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *backendName == backend.BackendOpenGL {
		// GL calls must stay on the thread that owns the context.
		runtime.LockOSThread()
		release, err := makeContext()
		if err != nil {
			log.Printf("Failed to create GL context: %v", err)
			return 1
		}
		defer release()
	}

	b, err := backend.Open(*backendName)
	if err != nil {
		log.Printf("Failed to open backend: %v", err)
		return 1
	}
	defer b.Close()

	p := &prober{out: os.Stdout, backend: b}
	ok := p.probe(*manifestPath)
	if !*watch {
		if !ok {
			return 1
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := watchFiles(ctx, p, *manifestPath); err != nil {
		log.Printf("Watch failed: %v", err)
		return 1
	}
	return 0
}
