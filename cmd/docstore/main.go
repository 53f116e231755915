// Command docstore reads and writes documents and files of a docstore project.
//
//	docstore get /projects/blog/collections/posts/documents/intro
//	docstore put /projects/blog/collections/posts/documents/intro '{"title":"Hello"}'
//	docstore upload /projects/blog/buckets/media ./cover.png
//	docstore download /projects/blog/buckets/media/files/cover s3://backups/cover.png
//
// Settings are read from ~/.docstore/config.hcl (see package config), then from the DOCSTORE_* environment
// variables and flags.
package main

import (
	"fmt"
	"io"
	"os"

	_ "github.com/c2fo/vfs/v7/backend/all" // register all backends
	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/urfave/cli/v2"

	"github.com/c2fo/docstore"
	"github.com/c2fo/docstore/config"
	"github.com/c2fo/docstore/dispatch"
	"github.com/c2fo/docstore/options"
	"github.com/c2fo/docstore/options/request"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		_, _ = color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "docstore",
		Usage:     "Reads and writes documents and files of a docstore project",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "configuration file",
				Value:   "",
				EnvVars: []string{"DOCSTORE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Usage:   "API root, e.g. https://docstore.example.com/v1",
				EnvVars: []string{docstore.EnvEndpoint},
			},
			&cli.StringFlag{
				Name:    "project",
				Usage:   "project id",
				EnvVars: []string{docstore.EnvProject},
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "API key",
				EnvVars: []string{docstore.EnvAPIKey},
			},
			&cli.BoolFlag{
				Name:  "offline",
				Usage: "answer reads from the local cache only",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log requests and cache use",
			},
		},
		Commands: []*cli.Command{
			getCommand(),
			listCommand(),
			putCommand(),
			deleteCommand(),
			uploadCommand(),
			downloadCommand(),
			cacheCommand(),
		},
	}
}

// newClient builds a client from the configuration file, overridden by flags and environment variables.
func newClient(c *cli.Context) (*docstore.Client, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	opts, err := cfg.ClientOptions()
	if err != nil {
		return nil, err
	}

	if v := c.String("endpoint"); v != "" {
		opts = append(opts, docstore.WithEndpoint(v))
	}
	if v := c.String("project"); v != "" {
		opts = append(opts, docstore.WithProject(v))
	}
	if v := c.String("api-key"); v != "" {
		opts = append(opts, docstore.WithAPIKey(v))
	}

	level := hclog.Warn
	if c.Bool("verbose") {
		level = hclog.Debug
	}
	opts = append(opts, docstore.WithLogger(hclog.New(&hclog.LoggerOptions{
		Name:   "docstore",
		Level:  level,
		Output: c.App.ErrWriter,
	})))

	return docstore.New(opts...)
}

// readOptions returns the request options of read commands.
func readOptions(c *cli.Context) []options.RequestOption {
	if c.Bool("offline") {
		return []options.RequestOption{request.WithCachePolicy(dispatch.CacheOnly)}
	}
	return nil
}

func requireArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return fmt.Errorf("%s requires %d argument(s): %s", c.Command.Name, n, c.Command.ArgsUsage)
	}
	return nil
}
