// translog - adlib debug log parser
//
// translog parses the structured debug logs adlib writes with -vv and
// renders the transcription events as a summary, a timeline, or JSON Lines.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/adlib-audio/translog/internal/cli"
)

func main() {
	// Writes to a closed pipe (e.g. piping to head) must surface as EPIPE
	// errors, not kill the process with SIGPIPE.
	signal.Ignore(syscall.SIGPIPE)

	os.Exit(cli.Execute())
}
