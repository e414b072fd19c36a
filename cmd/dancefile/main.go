// Command dancefile inspects and builds dance files.
//
// Usage:
//
//	dancefile info <file.mp3>
//	dancefile layout <file.mp3>
//	dancefile embed <in.mp3> <payload> <out.mp3>
//	dancefile extract <file.mp3> <payload>
//	dancefile wav <file.mp3> <out.wav>
//	dancefile version
//
// Set DANCEFILE_DEBUG=1 to log decoder and encoder diagnostics to stderr.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/simonhull/dancefile"
	"github.com/simonhull/dancefile/internal/container"
	"github.com/simonhull/dancefile/internal/mp3"
)

func usage() {
	fmt.Println("Usage: dancefile <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  info <file.mp3>                      tags, format and payload size")
	fmt.Println("  layout <file.mp3>                    byte layout of tag, container and first frame")
	fmt.Println("  embed <in.mp3> <payload> <out.mp3>   write in.mp3 with payload embedded")
	fmt.Println("  extract <file.mp3> <payload>         write the embedded payload to a file")
	fmt.Println("  wav <file.mp3> <out.wav>             export music (left) and data (right)")
	fmt.Println("  version                              print build information")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var (
		cmd  = os.Args[1]
		args = os.Args[2:]
		err  error
	)

	switch {
	case cmd == "info" && len(args) == 1:
		err = info(args[0])
	case cmd == "layout" && len(args) == 1:
		err = layout(args[0])
	case cmd == "embed" && len(args) == 3:
		err = embed(args[0], args[1], args[2])
	case cmd == "extract" && len(args) == 2:
		err = extract(args[0], args[1])
	case cmd == "wav" && len(args) == 2:
		err = exportWAV(args[0], args[1])
	case cmd == "version":
		v := dancefile.GetVersionInfo()
		fmt.Printf("dancefile %s (commit %s, built %s, %s)\n", v.Version, v.GitCommit, v.BuildTime, v.GoVersion)
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(dancefile.CodeOf(err)) + 1)
	}
}

func logger() *slog.Logger {
	if os.Getenv("DANCEFILE_DEBUG") == "" {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func load(path string) (*dancefile.File, error) {
	return dancefile.Open(path, dancefile.WithLogger(logger()))
}

func info(path string) error {
	f, err := load(path)
	if err != nil {
		return err
	}

	tags := f.Tags()
	fmt.Printf("File:        %s\n", f.Path())
	fmt.Printf("Size:        %d bytes\n", len(f.Raw()))
	fmt.Printf("Tags:        %s\n", tags)
	if tags.Comment != "" {
		fmt.Printf("Comment:     %s\n", tags.Comment)
	}
	fmt.Printf("Source rate: %d Hz\n", f.SourceSampleRate())
	fmt.Printf("Duration:    %s\n", f.Duration())
	fmt.Printf("Samples:     %d\n", f.Channels().Len())

	if f.IsDanceFile() {
		fmt.Printf("Dance file:  yes (%d byte payload)\n", len(f.Payload))
	} else {
		fmt.Println("Dance file:  no")
	}

	return nil
}

// layout prints where the regions of the file start without decoding audio.
func layout(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tagSize := mp3.TagSize(raw)
	fmt.Printf("%-10s offset %8d  size %8d\n", "ID3v2", 0, tagSize)

	from := tagSize
	if payload, n, ok := container.Parse(raw[tagSize:]); ok {
		fmt.Printf("%-10s offset %8d  size %8d  payload %d\n", "container", tagSize, n, len(payload))
		from += int64(n)
	} else {
		fmt.Printf("%-10s none\n", "container")
	}

	off, h, err := mp3.FindFrame(raw, from)
	if err != nil {
		return err
	}
	fmt.Printf("%-10s offset %8d  size %8d  %d Hz, %d kbps, %d ch, %d samples\n",
		"frame", off, h.Length(), h.SampleRate, h.Bitrate/1000, h.Channels, h.SamplesPerFrame())

	return nil
}

func embed(in, payloadPath, out string) error {
	payload, err := os.ReadFile(payloadPath)
	if err != nil {
		return err
	}

	f, err := load(in)
	if err != nil {
		return err
	}

	f.Payload = payload
	if err := f.Save(out, dancefile.WithValidation()); err != nil {
		return err
	}

	fmt.Printf("Embedded %d bytes into %s\n", len(payload), out)
	return nil
}

func extract(path, out string) error {
	f, err := load(path)
	if err != nil {
		return err
	}
	if !f.IsDanceFile() {
		return fmt.Errorf("%s is not a dance file", path)
	}

	if err := os.WriteFile(out, f.Payload, 0o644); err != nil {
		return err
	}

	fmt.Printf("Extracted %d bytes to %s\n", len(f.Payload), out)
	return nil
}

func exportWAV(path, out string) error {
	f, err := load(path)
	if err != nil {
		return err
	}
	return f.ExportWAV(out)
}
