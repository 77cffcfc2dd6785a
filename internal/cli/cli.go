// Package cli implements the command-line interface for hpf2tab.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/hpftools/hpf2tab/pkg/fileutil"
	"github.com/hpftools/hpf2tab/pkg/hpf"
	"github.com/hpftools/hpf2tab/pkg/humanfmt"
	"github.com/hpftools/hpf2tab/pkg/logging"
	"github.com/hpftools/hpf2tab/pkg/s3fetch"
	"github.com/hpftools/hpf2tab/pkg/table"
)

// Run executes the CLI with the given arguments.
func Run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: hpf2tab <command> [options] <file.hpf | s3://bucket/key>\ncommands: dump, info")
	}

	switch args[0] {
	case "dump":
		return runDump(args[1:])
	case "info":
		return runInfo(args[1:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	factor := fs.Int64("downsample", table.DefaultFactor, "keep every Nth sample")
	noDownsample := fs.Bool("no-downsample", false, "emit every sample")
	rowIndex := fs.Bool("row-index", false, "prefix rows with the absolute sample index")
	sep := fs.String("sep", "\t", "output field separator")
	bufferSize := fs.Int("buffer-size", hpf.DefaultBufferSize, "max chunk size in bytes")
	format := fs.String("format", "tsv", "output format: tsv or parquet")
	out := fs.String("out", "-", "output path, - for stdout")
	debug := fs.Bool("debug", false, "enable per-chunk decode traces")
	pretty := fs.Bool("pretty", false, "human-friendly log output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("dump takes exactly one input file")
	}
	if *factor <= 0 {
		return errors.New("--downsample must be positive")
	}

	logging.Init(*debug, *pretty)
	log := logging.WithComponent("dump")

	ctx := context.Background()
	input, err := openInput(ctx, fs.Arg(0), false, log)
	if err != nil {
		return err
	}
	defer input.Close()

	output, commitOutput, abortOutput, err := openOutput(*out)
	if err != nil {
		return err
	}

	var sink table.Sink
	switch *format {
	case "tsv":
		sink = table.NewTSVSink(output, table.TSVOptions{
			Separator: unescapeSep(*sep),
			RowIndex:  *rowIndex,
		})
	case "parquet":
		sink = table.NewParquetSink(output, *rowIndex)
	default:
		// Nothing was written; do not commit an empty table.
		abortOutput()
		return fmt.Errorf("unknown format: %s", *format)
	}

	emitter := table.NewEmitter(sink, table.Config{
		Downsample: !*noDownsample,
		Factor:     *factor,
	})

	start := time.Now()
	dec := hpf.NewDecoder(input, emitter, hpf.Config{BufferSize: *bufferSize}, log)
	stats, runErr := dec.Run()

	// Rows emitted before a failure were already handed to the sink; flush
	// them either way.
	if err := emitter.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if err := commitOutput(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}

	elapsed := time.Since(start)
	log.Info().
		Str("input", fs.Arg(0)).
		Str("bytes", humanfmt.Bytes(stats.BytesRead)).
		Str("samples", humanfmt.Count(stats.SamplesSeen)).
		Str("rows", humanfmt.Count(stats.RowsEmitted)).
		Str("elapsed", humanfmt.Duration(elapsed)).
		Str("throughput", humanfmt.Throughput(stats.BytesRead, elapsed)).
		Msg("dump complete")
	return nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	bufferSize := fs.Int("buffer-size", hpf.DefaultBufferSize, "max chunk size in bytes")
	debug := fs.Bool("debug", false, "enable per-chunk decode traces")
	pretty := fs.Bool("pretty", false, "human-friendly log output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("info takes exactly one input file")
	}

	logging.Init(*debug, *pretty)
	log := logging.WithComponent("info")

	ctx := context.Background()
	input, err := openInput(ctx, fs.Arg(0), true, log)
	if err != nil {
		return err
	}
	defer input.Close()

	emitter := table.NewEmitter(table.DiscardSink{}, table.Config{})
	dec := hpf.NewDecoder(input, emitter, hpf.Config{BufferSize: *bufferSize}, log)
	stats, err := dec.Run()
	if err != nil {
		return err
	}

	w := os.Stdout
	if hdr := dec.Header(); hdr != nil {
		fmt.Fprintf(w, "creator:        %s\n", hdr.Creator)
		fmt.Fprintf(w, "file version:   %d\n", hdr.FileVersion)
		fmt.Fprintf(w, "recording date: %s\n", hdr.RecordingDate)
		fmt.Fprintf(w, "index offset:   %d\n", hdr.IndexOffset)
	}
	fmt.Fprintf(w, "group id:       %d\n", dec.GroupID())
	fmt.Fprintf(w, "channels:       %d\n", len(dec.Channels()))
	for _, ch := range dec.Channels() {
		fmt.Fprintf(w, "  [%d] %s (%s, %s, %s samples/s, scale=%g offset=%g)\n",
			ch.Index, ch.Name, ch.Unit, ch.DataType,
			humanfmt.Count(int64(ch.PerChannelSampleRate)), ch.DataScale, ch.DataOffset)
	}
	if defs := dec.EventDefinitions(); len(defs) > 0 {
		fmt.Fprintf(w, "event types:    %d\n", len(defs))
		for _, def := range defs {
			fmt.Fprintf(w, "  [%d] %s (class=%d id=%d type=%s)\n",
				def.Index, def.Name, def.Class, def.ID, def.Type)
		}
	}
	fmt.Fprintf(w, "chunks:         %d (%d data)\n", stats.Chunks, stats.DataChunks)
	fmt.Fprintf(w, "samples:        %s per channel\n", humanfmt.Count(stats.SamplesSeen))
	fmt.Fprintf(w, "events:         %d\n", stats.EventRecords)
	fmt.Fprintf(w, "index entries:  %d\n", stats.IndexEntries)
	fmt.Fprintf(w, "size:           %s\n", humanfmt.Bytes(stats.BytesRead))
	return nil
}

// openInput opens a local file or an s3:// object. With stream set the
// object is read sequentially straight off the GET response; otherwise it is
// fetched to a temp file through the download manager first, which is faster
// for multi-gigabyte dumps.
func openInput(ctx context.Context, path string, stream bool, log zerolog.Logger) (io.ReadCloser, error) {
	if !s3fetch.IsURL(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		return f, nil
	}

	bucket, key, err := s3fetch.ParseURL(path)
	if err != nil {
		return nil, err
	}
	client, err := s3fetch.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	if stream {
		log.Info().Str("input", path).Msg("streaming recording")
		return client.StreamObject(ctx, bucket, key)
	}

	downloader := s3fetch.NewDownloader(client, s3fetch.DefaultDownloaderConfig())
	reader, result, err := downloader.DownloadToReader(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("input", path).
		Str("bytes", humanfmt.Bytes(result.BytesDownloaded)).
		Str("elapsed", humanfmt.Duration(result.Duration)).
		Str("throughput", humanfmt.Throughput(result.BytesDownloaded, result.Duration)).
		Msg("recording downloaded")
	return reader, nil
}

// openOutput returns stdout for "-", otherwise a file written with tmp+mv
// semantics so an interrupted run never leaves a half-written table at the
// final path. commit renames the file into place; abort discards it.
func openOutput(path string) (output io.Writer, commit func() error, abort func(), err error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, func() {}, nil
	}
	// Best effort; leftovers from killed runs, never a reason to fail this one.
	fileutil.CleanupTmpFiles(filepath.Dir(path))
	f, err := fileutil.Create(path)
	if err != nil {
		return nil, nil, nil, err
	}
	return f, f.Commit, f.Abort, nil
}

// unescapeSep turns the two-character sequence \t into a real tab so shells
// don't need to quote one.
func unescapeSep(s string) string {
	if s == `\t` {
		return "\t"
	}
	return s
}
