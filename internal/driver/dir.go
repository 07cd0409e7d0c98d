package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"apexlog/internal/parser"
	"apexlog/internal/source"
	"apexlog/internal/tree"
)

// DirOptions configures a directory-wide analysis run.
type DirOptions struct {
	// Jobs bounds worker parallelism, <=0 uses GOMAXPROCS.
	Jobs int
	// Cache serves summaries for unchanged files, nil disables caching.
	Cache *Cache
	// Observer receives per-file progress events, nil disables them.
	Observer PhaseObserver
}

// DirResult содержит результат анализа одного файла каталога.
type DirResult struct {
	Path      string
	Summary   *Summary
	Trace     *tree.Trace
	FromCache bool
	Err       error
}

// ListLogFiles возвращает отсортированный список всех *.log файлов в директории
func ListLogFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".log") {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir analyzes every *.log file under dir in parallel. Results come
// back in path order; per-file failures land in DirResult.Err so one broken
// file never aborts the walk.
func AnalyzeDir(ctx context.Context, dir string, opts DirOptions) ([]DirResult, error) {
	files, err := ListLogFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				// Проверка отмены
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				start := time.Now()
				emit(opts.Observer, PhaseEvent{Path: path, Status: PhaseStart})
				results[i] = analyzeOne(path, opts.Cache)
				emit(opts.Observer, PhaseEvent{
					Path:      path,
					Status:    PhaseEnd,
					Elapsed:   time.Since(start),
					FromCache: results[i].FromCache,
					Failed:    results[i].Err != nil,
				})
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// analyzeOne serves one file from the cache when the content hash matches,
// otherwise parses it and refreshes the cache.
func analyzeOne(path string, cache *Cache) DirResult {
	f, err := source.Load(path)
	if err != nil {
		return DirResult{Path: path, Err: err}
	}

	if cache != nil {
		var cached Summary
		if ok, _ := cache.Get(f.Hash, &cached); ok {
			// Содержимое то же, но файл мог переехать.
			cached.Path = path
			return DirResult{Path: path, Summary: &cached, FromCache: true}
		}
	}

	tr := parser.Parse(f)
	sum, err := Summarize(path, tr)
	if err != nil {
		return DirResult{Path: path, Trace: tr, Err: err}
	}
	if cache != nil {
		// Сбой записи кэша не должен ломать анализ.
		_ = cache.Put(f.Hash, sum)
	}
	return DirResult{Path: path, Summary: sum, Trace: tr}
}
