// Package runner cleans batches of transcript files concurrently through a
// shared pipeline.
//
// Concurrency exists only across files: each document is cleaned
// sequentially by [transcript.Pipeline.Clean], and a bounded errgroup fans
// out over the inputs. Files fail independently — an unreadable or invalid
// input records its error in its [FileResult] while the remaining files are
// still processed. Only context cancellation stops the batch early.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/cuescrub/internal/transcript"
)

// FileResult is the outcome of cleaning one input file.
type FileResult struct {
	// Path is the input file path as given.
	Path string

	// Output is the path the cleaned text is written to.
	Output string

	// Lines is the number of cleaned lines written.
	Lines int

	// Report counts the pipeline work for this file.
	Report transcript.Report

	// Err is this file's failure. It is nil on success and does not affect
	// the other files of the batch.
	Err error
}

// Runner processes batches of transcript files with bounded concurrency.
type Runner struct {
	pipe *transcript.Pipeline
	jobs int
}

// New returns a Runner cleaning at most jobs files at a time through pipe.
// A jobs value below 1 is clamped to 1.
func New(pipe *transcript.Pipeline, jobs int) *Runner {
	if jobs < 1 {
		jobs = 1
	}
	return &Runner{pipe: pipe, jobs: jobs}
}

// OutputPath returns where batch mode writes the cleaned text for path: the
// input's stem plus a .clean.txt suffix, next to the input.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".clean.txt"
}

// Run cleans every path and writes each cleaned file next to its input (see
// [OutputPath]). Per-file failures are recorded in the returned results,
// which are in input order; Run itself returns an error only when ctx is
// canceled before the batch finishes.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	for i, path := range paths {
		results[i] = FileResult{Path: path, Output: OutputPath(path)}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				mu.Lock()
				results[i].Err = err
				mu.Unlock()
				return err
			}

			res := r.cleanFile(path)
			mu.Lock()
			results[i] = res
			mu.Unlock()

			if res.Err != nil {
				slog.Warn("runner: file failed", "path", path, "err", res.Err)
				return nil
			}
			slog.Info("runner: cleaned file",
				"path", path,
				"output", res.Output,
				"lines", res.Lines)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("runner: %w", err)
	}
	return results, nil
}

// cleanFile reads, cleans and writes a single file.
func (r *Runner) cleanFile(path string) FileResult {
	res := FileResult{Path: path, Output: OutputPath(path)}

	raw, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("runner: read %q: %w", path, err)
		return res
	}

	cleaned, err := r.pipe.Clean(transcript.Document{Raw: string(raw), Name: path})
	if err != nil {
		res.Err = fmt.Errorf("runner: clean %q: %w", path, err)
		return res
	}

	text := cleaned.Text()
	if text != "" {
		text += "\n"
	}
	if err := os.WriteFile(res.Output, []byte(text), 0o644); err != nil {
		res.Err = fmt.Errorf("runner: write %q: %w", res.Output, err)
		return res
	}

	res.Lines = len(cleaned.Lines)
	res.Report = cleaned.Report
	return res
}
