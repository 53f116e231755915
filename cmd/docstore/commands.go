package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/c2fo/docstore"
	"github.com/c2fo/docstore/options"
	"github.com/c2fo/docstore/options/newupload"
	"github.com/c2fo/docstore/options/request"
	"github.com/c2fo/docstore/types"
	"github.com/c2fo/docstore/upload"
	"github.com/c2fo/docstore/utils"
)

var (
	success = color.New(color.FgGreen)
	notice  = color.New(color.FgYellow)
)

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Prints a project, collection, document, bucket listing or file",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1); err != nil {
				return err
			}
			client, err := newClient(c)
			if err != nil {
				return err
			}
			ref, err := client.ParsePath(c.Args().First())
			if err != nil {
				return err
			}

			opts := readOptions(c)
			var v any
			switch r := ref.(type) {
			case docstore.ProjectRef:
				v, err = r.Get(c.Context, opts...)
			case docstore.CollectionRef:
				v, err = r.Get(c.Context, opts...)
			case docstore.DocumentRef:
				v, err = r.Get(c.Context, opts...)
			case docstore.BucketRef:
				v, err = r.Files(c.Context, nil, opts...)
			case docstore.FileRef:
				v, err = r.Get(c.Context, opts...)
			default:
				return fmt.Errorf("unsupported path %s", ref)
			}
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, v)
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "Lists the documents of a collection",
		ArgsUsage: "<collection path>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "where",
				Usage: "equality filter such as status=published, may be repeated",
			},
			&cli.StringFlag{
				Name:  "order",
				Usage: "sort field, prefix with - for descending order",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "maximum number of documents",
			},
			&cli.IntFlag{
				Name:  "offset",
				Usage: "number of documents to skip",
			},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1); err != nil {
				return err
			}
			client, err := newClient(c)
			if err != nil {
				return err
			}
			ref, err := client.ParsePath(c.Args().First())
			if err != nil {
				return err
			}
			coll, ok := ref.(docstore.CollectionRef)
			if !ok {
				return fmt.Errorf("%s is not a collection", ref)
			}

			q, err := queryFromFlags(c)
			if err != nil {
				return err
			}
			list, err := coll.List(c.Context, q, readOptions(c)...)
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, list)
		},
	}
}

func queryFromFlags(c *cli.Context) (*docstore.Query, error) {
	q := docstore.NewQuery()
	for _, w := range c.StringSlice("where") {
		field, value, ok := strings.Cut(w, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid filter %q, expected field=value", w)
		}
		q.Where(field, docstore.Equal, value)
	}
	if order := c.String("order"); order != "" {
		if strings.HasPrefix(order, "-") {
			q.OrderDesc(order[1:])
		} else {
			q.OrderAsc(order)
		}
	}
	if c.IsSet("limit") {
		q.Limit(c.Int("limit"))
	}
	if c.IsSet("offset") {
		q.Offset(c.Int("offset"))
	}
	return q, nil
}

func putCommand() *cli.Command {
	return &cli.Command{
		Name:      "put",
		Usage:     "Replaces a document, or merges into it with --merge",
		ArgsUsage: "<document path> <json>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "merge",
				Usage: "update only the given fields",
			},
			&cli.StringSliceFlag{
				Name:  "permission",
				Usage: "permission string, may be repeated",
			},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 2); err != nil {
				return err
			}
			client, err := newClient(c)
			if err != nil {
				return err
			}
			ref, err := client.ParsePath(c.Args().Get(0))
			if err != nil {
				return err
			}
			doc, ok := ref.(docstore.DocumentRef)
			if !ok {
				return fmt.Errorf("%s is not a document", ref)
			}

			data := map[string]any{}
			if err := json.Unmarshal([]byte(c.Args().Get(1)), &data); err != nil {
				return fmt.Errorf("document data must be a JSON object: %w", err)
			}

			var opts []options.RequestOption
			if perms := c.StringSlice("permission"); len(perms) > 0 {
				opts = append(opts, request.WithPermissions(perms...))
			}

			var written *types.Document
			if c.Bool("merge") {
				written, err = doc.Update(c.Context, data, opts...)
			} else {
				written, err = doc.Set(c.Context, data, opts...)
			}
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, written)
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Deletes a document or a file",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1); err != nil {
				return err
			}
			client, err := newClient(c)
			if err != nil {
				return err
			}
			ref, err := client.ParsePath(c.Args().First())
			if err != nil {
				return err
			}

			switch r := ref.(type) {
			case docstore.DocumentRef:
				err = r.Delete(c.Context)
			case docstore.FileRef:
				err = r.Delete(c.Context)
			default:
				return fmt.Errorf("only documents and files can be deleted, got %s", ref)
			}
			if err != nil {
				return err
			}
			_, _ = success.Fprintf(c.App.Writer, "Deleted %s\n", ref)
			return nil
		},
	}
}

func uploadCommand() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Uploads a local file or any vfs URI into a bucket",
		ArgsUsage: "<bucket path> <source uri|path>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "file id, generated when omitted",
			},
			&cli.StringFlag{
				Name:  "content-type",
				Usage: "content type, detected when omitted",
			},
			&cli.BoolFlag{
				Name:  "base64",
				Usage: "send the content base64 encoded in a JSON body",
			},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 2); err != nil {
				return err
			}
			client, err := newClient(c)
			if err != nil {
				return err
			}
			ref, err := client.ParsePath(c.Args().Get(0))
			if err != nil {
				return err
			}
			bucket, ok := ref.(docstore.BucketRef)
			if !ok {
				return fmt.Errorf("%s is not a bucket", ref)
			}

			src, err := upload.FromPath(c.Args().Get(1))
			if err != nil {
				return err
			}

			opts := []options.UploadOption{
				newupload.WithProgress(func(p types.UploadProgress) {
					_, _ = notice.Fprintf(c.App.ErrWriter, "%s: chunk %d/%d (%.1f%%)\n",
						src.Name(), p.ChunksUploaded, p.ChunksTotal, p.Percent)
				}),
			}
			if id := c.String("id"); id != "" {
				opts = append(opts, newupload.WithFileID(id))
			}
			if ct := c.String("content-type"); ct != "" {
				opts = append(opts, newupload.WithContentType(ct))
			}
			if c.Bool("base64") {
				opts = append(opts, newupload.WithBase64())
			}

			file, err := bucket.Upload(c.Context, src, opts...)
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, file)
		},
	}
}

func downloadCommand() *cli.Command {
	return &cli.Command{
		Name:      "download",
		Usage:     "Downloads a file to a local path or any vfs URI",
		ArgsUsage: "<file path> <target uri|path>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 2); err != nil {
				return err
			}
			client, err := newClient(c)
			if err != nil {
				return err
			}
			ref, err := client.ParsePath(c.Args().Get(0))
			if err != nil {
				return err
			}
			file, ok := ref.(docstore.FileRef)
			if !ok {
				return fmt.Errorf("%s is not a file", ref)
			}

			target, err := utils.PathToURI(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("invalid target %s: %w", c.Args().Get(1), err)
			}
			written, err := file.DownloadToURI(c.Context, target)
			if err != nil {
				return err
			}
			_, _ = success.Fprintf(c.App.Writer, "Downloaded %s to %s\n", file, written.URI())
			return nil
		},
	}
}

func cacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manages the local response cache",
		Subcommands: []*cli.Command{
			{
				Name:  "clear",
				Usage: "Removes every cached response",
				Action: func(c *cli.Context) error {
					client, err := newClient(c)
					if err != nil {
						return err
					}
					if client.Cache() == nil {
						_, _ = notice.Fprintln(c.App.Writer, "No cache configured")
						return nil
					}
					if err := client.ClearCache(); err != nil {
						return err
					}
					_, _ = success.Fprintln(c.App.Writer, "Cache cleared")
					return nil
				},
			},
		},
	}
}
