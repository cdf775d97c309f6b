package extractous

import (
	"context"
	"sync"
)

// FileResult is the outcome of one source in a batch extraction. Err is
// set when that source failed; the rest of the batch is unaffected.
type FileResult struct {
	Path     string
	Text     string
	Metadata Metadata
	Err      error
}

// ExtractFilesToString extracts every file in paths to a string, one
// independent result per source in input order. A failing source never
// aborts the batch.
//
// Sources are processed sequentially unless parallel batches are enabled,
// in which case they are spread over a worker pool; each worker attaches
// itself to the runtime isolate on its first bridge call. The context
// only short-circuits sources not yet started — a bridge call already in
// flight blocks until the foreign runtime returns.
func (e Extractor) ExtractFilesToString(ctx context.Context, paths []string) []FileResult {
	results := make([]FileResult, len(paths))

	if err := e.validate(); err != nil {
		for i, path := range paths {
			results[i] = FileResult{Path: path, Err: err}
		}
		return results
	}

	if !e.parallel || len(paths) < 2 {
		for i, path := range paths {
			results[i] = e.extractOne(ctx, path)
		}
		return results
	}

	workers := e.workers
	if workers > len(paths) {
		workers = len(paths)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = e.extractOne(ctx, paths[i])
			}
		}()
	}
	for i := range paths {
		indexes <- i
	}
	close(indexes)
	wg.Wait()
	return results
}

func (e Extractor) extractOne(ctx context.Context, path string) FileResult {
	if err := ctx.Err(); err != nil {
		return FileResult{Path: path, Err: ioError("extract batch", err)}
	}
	text, meta, err := e.ExtractFileToString(path)
	return FileResult{Path: path, Text: text, Metadata: meta, Err: err}
}
