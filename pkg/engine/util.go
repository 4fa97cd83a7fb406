package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/seekerror/logw"
)

// ReadLines reads newline-delimited text off r into a chan. Async. Grounded
// on the donor's ReadStdinLines, generalized from os.Stdin specifically to
// any io.Reader so the same helper serves both an interactive stdio client
// and, as used by cmd/reversi, a net.Conn dialed to a match server.
func ReadLines(ctx context.Context, r io.Reader) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			logw.Debugf(ctx, "<< %v", scanner.Text())
			ret <- scanner.Text()
		}
	}()
	return ret
}

// WriteLines writes lines from the given chan to w, flushing after each one
// so a socket writer sees them promptly. Grounded on the donor's
// WriteStdoutLines, generalized from os.Stdout to any io.Writer.
func WriteLines(ctx context.Context, w io.Writer, out <-chan string) {
	bw := bufio.NewWriter(w)
	for line := range out {
		logw.Debugf(ctx, ">> %v", line)
		_, _ = fmt.Fprintln(bw, line)
		_ = bw.Flush()
	}
}
