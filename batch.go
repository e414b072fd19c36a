package dancefile

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// LoadMany loads several files concurrently.
//
// Files are decoded in parallel using up to runtime.NumCPU() goroutines, each
// into its own File. Results are returned in the same order as paths. If any
// file fails to load, or ctx is cancelled, the first error is returned and no
// files are.
//
// Example:
//
//	files, err := dancefile.LoadMany(ctx, paths, dancefile.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range files {
//		fmt.Printf("%s: %s (dance: %t)\n", f.Path(), f.Tags(), f.IsDanceFile())
//	}
func LoadMany(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			// Check for cancellation
			if err := ctx.Err(); err != nil {
				return err
			}

			f := New(opts...)
			if err := f.LoadContext(ctx, path); err != nil {
				return err
			}

			results[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
