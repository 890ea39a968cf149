package main

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/abrezinsky/cubeplan/internal/logger"
)

const ctrlC = 0x03

var (
	infoColor  = color.New(color.FgCyan)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	helpColor  = color.New(color.FgGreen, color.Bold)
)

// keyboard dispatches single-key shortcuts while the server runs
type keyboard struct {
	out  io.Writer
	log  *logger.SlogLogger
	url  func() string
	open func(url string) error
	quit func()
}

// start puts the terminal into raw mode and reads keys from in until a quit
// key. The returned function restores the terminal.
func (k *keyboard) start(fd int, in *os.File) (func(), error) {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	go k.listen(in)
	return func() { term.Restore(fd, oldState) }, nil
}

// listen handles keys from r until a quit key or a read error
func (k *keyboard) listen(r io.Reader) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		if !k.handle(buf[0]) {
			return
		}
	}
}

// handle runs the shortcut for key. It returns false once the server has
// been asked to quit.
func (k *keyboard) handle(key byte) bool {
	switch strings.ToLower(string(key)) {
	case "o":
		url := k.url()
		infoColor.Fprintf(k.out, "Opening %s in browser...\n", url)
		if err := k.open(url); err != nil {
			errorColor.Fprintf(k.out, "Error opening browser: %v\n", err)
		}
	case "h":
		if k.log.IsHTTPLoggingEnabled() {
			k.log.DisableHTTPLogging()
			warnColor.Fprintln(k.out, "HTTP logging disabled")
		} else {
			k.log.EnableHTTPLogging()
			okColor.Fprintln(k.out, "HTTP logging enabled")
		}
	case "l":
		next := logger.NextLevel(k.log.GetLevel())
		k.log.SetLevel(next)
		okColor.Fprintf(k.out, "Log level: %s\n", strings.ToLower(next.String()))
	case "q", string(rune(ctrlC)):
		warnColor.Fprintln(k.out, "Shutting down server...")
		k.quit()
		return false
	case "?":
		k.printHelp()
	}
	return true
}

// printHelp lists the keyboard shortcuts
func (k *keyboard) printHelp() {
	helpColor.Fprintln(k.out, "\n  Keyboard shortcuts:")
	for _, s := range [][2]string{
		{"o", "Open the competition list in a browser"},
		{"h", "Toggle HTTP request logging"},
		{"l", "Cycle log level (debug, info, warn, error)"},
		{"q", "Quit server"},
		{"?", "Show this help"},
	} {
		infoColor.Fprintf(k.out, "    %s", s[0])
		io.WriteString(k.out, "      - "+s[1]+"\n")
	}
	io.WriteString(k.out, "\n")
}

// crlfWriter writes \n as \r\n for terminals in raw mode
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
