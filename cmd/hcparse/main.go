package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"holyc/pkg/compiler"
)

func readSources(paths []string) (map[string]string, error) {
	sources := make(map[string]string, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		sources[path] = string(data)
	}
	return sources, nil
}

// collectDir gathers .HC sources under dir, non-recursively.
func collectDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".hc") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

func main() {
	app := &cli.App{
		Name:  "hcparse",
		Usage: "HolyC front end: lex and parse sources, dump the AST",
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			if cerr, ok := err.(*compiler.Error); ok {
				fmt.Fprintln(os.Stderr, cerr.Error())
			} else {
				tracerr.PrintSourceColor(err)
			}
			os.Exit(1)
		},
		Commands: []*cli.Command{
			{
				Name:      "tokens",
				Usage:     "lex a file and print its token stream",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return cli.Exit("no input file provided", 1)
					}
					data, err := os.ReadFile(path)
					if err != nil {
						return tracerr.Wrap(err)
					}
					tokens, err := compiler.NewLexer(string(data), path).Tokenize()
					if err != nil {
						return err
					}
					for _, tok := range tokens {
						fmt.Println(tok)
					}
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "parse files and dump each AST",
				ArgsUsage: "FILE [FILE...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "compact",
						Usage: "one-line tree rendering instead of the repr dump",
					},
				},
				Action: func(c *cli.Context) error {
					paths := c.Args().Slice()
					if len(paths) == 0 {
						return cli.Exit("no input files provided", 1)
					}
					sources, err := readSources(paths)
					if err != nil {
						return err
					}
					programs, err := compiler.ParseSources(context.Background(), sources)
					if err != nil {
						return err
					}
					for _, path := range paths {
						fmt.Printf("== %s\n", path)
						if c.Bool("compact") {
							fmt.Println(programs[path])
						} else {
							repr.Println(programs[path], repr.Indent("  "), repr.OmitEmpty(true))
						}
					}
					return nil
				},
			},
			{
				Name:      "check",
				Usage:     "parse every .HC file in a directory, reporting errors only",
				ArgsUsage: "DIR",
				Action: func(c *cli.Context) error {
					dir := c.Args().First()
					if dir == "" {
						dir = "."
					}
					paths, err := collectDir(dir)
					if err != nil {
						return err
					}
					if len(paths) == 0 {
						return cli.Exit("no .HC files found in "+dir, 1)
					}
					sources, err := readSources(paths)
					if err != nil {
						return err
					}
					programs, err := compiler.ParseSources(context.Background(), sources)
					if err != nil {
						return err
					}
					for _, path := range paths {
						fmt.Printf("%s: ok (%d declarations)\n", path, len(programs[path].Decls))
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
