// Command reversi is a Reversi match client: it dials a match server, speaks
// the OPEN/START/MOVE/ACK/END/BYE wire protocol on the connection, and lets
// the engine play out the game to completion.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/seekerror/logw"

	"github.com/ryoiwata/reversi/pkg/book"
	"github.com/ryoiwata/reversi/pkg/engine"
	"github.com/ryoiwata/reversi/pkg/engine/protocol"
)

var (
	host = flag.String("host", "localhost", "Match server host")
	port = flag.Int("port", 3000, "Match server port")
	name = flag.String("name", "reversi", "Client name announced to the server")

	depth = flag.Uint("depth", 0, "Fixed search depth override (zero for time-based selection)")
	hash  = flag.Uint("hash", 32, "Enable the exact solver's transposition table if nonzero (the table size is not bounded by this value)")
	noise = flag.Uint("noise", 0, "Evaluation noise in centi-discs (zero if deterministic)")
	seed  = flag.Int64("seed", 0, "Random seed for evaluation noise")

	bookPath = flag.String("book", "", "Path to an opening book corpus file")
	confPath = flag.String("config", "", "Path to a TOML file setting depth, hash, noise, seed and book (flags given explicitly take precedence)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: reversi [options]

REVERSI is a competitive Reversi match client.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	conf, err := loadConfig(*confPath)
	if err != nil {
		logw.Exitf(ctx, "Invalid config %v: %v", *confPath, err)
	}
	applyConfig(conf)

	var opts []engine.Option
	opts = append(opts, engine.WithOptions(engine.Options{Depth: *depth, Hash: *hash, Noise: *noise}))
	opts = append(opts, engine.WithSeed(*seed))
	if *bookPath != "" {
		b, err := loadBook(*bookPath)
		if err != nil {
			logw.Exitf(ctx, "Invalid book %v: %v", *bookPath, err)
		}
		opts = append(opts, engine.WithBook(b))
	}

	e := engine.New(ctx, "reversi", "ryoiwata", opts...)

	addr := fmt.Sprintf("%v:%v", *host, *port)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		logw.Exitf(ctx, "Failed to dial %v: %v", addr, err)
	}
	defer conn.Close()

	logw.Infof(ctx, "Connected to %v", addr)

	in := engine.ReadLines(ctx, conn)
	driver, out := protocol.NewDriver(ctx, e, *name, in)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		engine.WriteLines(gCtx, conn, out)
		return nil
	})
	g.Go(func() error {
		<-driver.Closed()
		return nil
	})

	if err := g.Wait(); err != nil {
		logw.Exitf(ctx, "Client failed: %v", err)
	}
}

// applyConfig overwrites any flag.Value left at its default with the
// corresponding config field, so that flags passed explicitly on the command
// line still win over a loaded config file.
func applyConfig(c config) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["depth"] && c.Depth != 0 {
		*depth = c.Depth
	}
	if !set["hash"] && c.Hash != 0 {
		*hash = c.Hash
	}
	if !set["noise"] && c.Noise != 0 {
		*noise = c.Noise
	}
	if !set["seed"] && c.Seed != 0 {
		*seed = c.Seed
	}
	if !set["book"] && c.Book != "" {
		*bookPath = c.Book
	}
}

// loadBook reads a newline-delimited opening book corpus file.
func loadBook(path string) (book.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return book.NewBook(lines)
}
