// Package pipeline fans batch normalization out over a worker pool.
// One document is a pure synchronous computation, so a batch is
// embarrassingly parallel: one worker per file, results by index, no
// shared state.
package pipeline

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"fortio.org/safecast"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/iconfit/iconfit/internal/cache"
	"github.com/iconfit/iconfit/svgicon"
)

// Result is the outcome for a single file. Err is set for I/O level
// failures only; normalization itself never fails a file, documents it
// cannot resize come back unchanged with Resized false.
type Result struct {
	Path      string
	Output    string
	Resized   bool
	SkipCount uint32
	Skipped   []svgicon.Skip // detailed skips, nil when served from cache
	Reason    error          // why the document passed through, nil when resized or cached
	Cached    bool
	Err       error
}

// Batch normalizes a set of files concurrently.
type Batch struct {
	Size      float64 // target edge, svgicon.DefaultSize when <= 0
	Jobs      int     // worker cap, GOMAXPROCS when <= 0
	ErrorMode svgicon.ErrorMode
	Cache     *cache.Cache // optional, nil disables caching
	LogOutput io.Writer    // optional structured event sink

	logger      zerolog.Logger
	initLogOnce sync.Once
}

// log returns the zerolog logger, initializing it lazily when
// LogOutput is set. The zero logger discards events.
func (b *Batch) log() *zerolog.Logger {
	if b.LogOutput != nil {
		b.initLogOnce.Do(func() {
			b.logger = zerolog.New(b.LogOutput).With().Timestamp().Logger()
		})
	}
	return &b.logger
}

// Run processes every path and returns one result per input, in input
// order. Per-file failures are recorded in their slot; only context
// cancellation stops the batch early, and slots not reached by then
// carry the cancellation cause.
func (b *Batch) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results
	}
	jobs := b.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// the index is unique per goroutine, no mutex needed
			results[i] = b.runOne(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for i := range results {
			if results[i].Path == "" {
				results[i] = Result{Path: paths[i], Err: err}
			}
		}
	}
	return results
}

func (b *Batch) runOne(path string) Result {
	res := Result{Path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		res.Err = errors.Wrap(err, "read icon")
		b.log().Error().Str("path", path).Err(err).Msg("read failed")
		return res
	}
	size := b.Size
	if size <= 0 {
		size = svgicon.DefaultSize
	}

	entry, hit, cerr := b.Cache.Get(raw, size, uint8(b.ErrorMode))
	if cerr != nil {
		b.log().Warn().Str("path", path).Err(cerr).Msg("cache read failed")
	}
	if hit {
		b.log().Debug().Str("path", path).Msg("cache hit")
		res.Output = entry.Output
		res.Resized = entry.Resized
		res.SkipCount = entry.SkipCount
		res.Cached = true
		return res
	}

	norm, err := svgicon.NormalizeStream(bytes.NewReader(raw), size, b.ErrorMode)
	if err != nil {
		res.Err = err
		b.log().Error().Str("path", path).Err(err).Msg("normalization failed")
		return res
	}
	res.Output = norm.Text
	res.Resized = norm.Resized
	res.Skipped = norm.Skipped
	res.Reason = norm.Reason
	count, err := safecast.Conv[uint32](len(norm.Skipped))
	if err != nil {
		count = math.MaxUint32
	}
	res.SkipCount = count

	if err := b.Cache.Put(raw, size, uint8(b.ErrorMode), cache.Entry{
		Output:    res.Output,
		Resized:   res.Resized,
		SkipCount: res.SkipCount,
	}); err != nil {
		b.log().Warn().Str("path", path).Err(err).Msg("cache write failed")
	}
	b.log().Info().Str("path", path).Bool("resized", res.Resized).Uint32("skips", res.SkipCount).Msg("normalized")
	return res
}

// Collect expands the argument list into a sorted, deduplicated set of
// files. Directories are walked recursively for .svg entries; explicit
// file arguments are taken as given.
func Collect(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".svg") {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}
