package compiler

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ParseSource runs the full front end over one source file: lex, then
// parse. file enriches diagnostic positions and may be empty.
func ParseSource(src, file string) (*Program, error) {
	tokens, err := NewLexer(src, file).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens, src, file).Parse()
}

// ParseSources parses several independent source files concurrently,
// keyed by file name. Parses share no mutable state, so each unit runs
// on its own goroutine; the first error cancels the remaining work and
// is returned.
func ParseSources(ctx context.Context, sources map[string]string) (map[string]*Program, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	programs := make(map[string]*Program, len(sources))

	for file, src := range sources {
		file, src := file, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			prog, err := ParseSource(src, file)
			if err != nil {
				return err
			}
			mu.Lock()
			programs[file] = prog
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return programs, nil
}
