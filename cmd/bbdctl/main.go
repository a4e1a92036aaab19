// Command bbdctl loads and ticks a .bbd board headlessly. It is a thin
// collaborator over the core engine, not the interactive editor (spec §1
// excludes that): everything here goes through Board's public surface.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/solderline/breadboard/internal/api"
	"github.com/solderline/breadboard/internal/statsview"
	"github.com/solderline/breadboard/persist"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "info":
		cmdInfo(os.Args[2:])
	case "run":
		cmdRun(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: bbdctl <info|run> [flags] board.bbd")
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)
	path := fs.Arg(0)
	if path == "" {
		usage()
		os.Exit(2)
	}

	b, perfect, err := persist.LoadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	if !perfect {
		log.Println("warning: load was non-perfect, some components/cables were dropped")
	}
	fmt.Printf("%dx%d board, %d components, %d cables\n",
		b.Width, b.Height, len(b.Components()), len(b.Cables()))
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	hz := fs.Float64("hz", 10, "ticks per second")
	addr := fs.String("api", "", "serve board status as JSON on this address, e.g. :8080")
	stats := fs.Bool("stats", false, "launch the runtime statsview dashboard (build with -tags statsview)")
	fs.Parse(args)
	path := fs.Arg(0)
	if path == "" {
		usage()
		os.Exit(2)
	}

	b, perfect, err := persist.LoadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	if !perfect {
		log.Println("warning: load was non-perfect, some components/cables were dropped")
	}
	if err := b.Initialise(); err != nil {
		log.Fatal(err)
	}

	if *addr != "" {
		go func() {
			log.Printf("status api listening on %s", *addr)
			log.Println(http.ListenAndServe(*addr, api.Handler(b)))
		}()
	}
	if *stats {
		statsview.Launch(os.Stdout)
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err == nil {
			defer term.Restore(fd, oldState)
		}
	}

	dt := time.Duration(float64(time.Second) / *hz)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	fmt.Print("running, press q to quit\r\n")
	keys := make(chan byte, 1)
	go readKeys(keys)

	for {
		select {
		case <-ticker.C:
			if err := b.Tick(dt.Seconds()); err != nil {
				fmt.Printf("simulation error: %v\r\n", err)
				return
			}
		case k := <-keys:
			if k == 'q' {
				return
			}
		}
	}
}

func readKeys(out chan<- byte) {
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return
		}
		out <- buf[0]
	}
}
