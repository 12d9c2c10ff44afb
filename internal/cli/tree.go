package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/colsplit/colsplit/pkg/cache"
	"github.com/colsplit/colsplit/pkg/collection"
	"github.com/colsplit/colsplit/pkg/errors"
	"github.com/colsplit/colsplit/pkg/render"
	"github.com/colsplit/colsplit/pkg/sanitize"
)

const (
	formatText = "text"
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatPNG  = "png"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	format   string // output format: text, dot, svg, png
	output   string // output file ("" means stdout for text and dot)
	detailed bool   // annotate requests with their HTTP method
	refresh  bool   // bypass the render cache
}

// newTreeCmd creates the tree command, which renders the collection
// hierarchy as styled text or Graphviz output.
func newTreeCmd(cfg *Config) *cobra.Command {
	opts := treeOpts{format: cfg.TreeFormat}
	cacheTTL := cfg.CacheTTL()

	cmd := &cobra.Command{
		Use:   "tree [file-or-directory]",
		Short: "Render the collection hierarchy",
		Long: `Tree renders the folder and request hierarchy of a collection, read from
either a collection file or a split directory tree. Text and DOT output
go to stdout unless --output is given; SVG and PNG require Graphviz
rendering and are written to a file. Rendered artifacts are cached and
reused until they expire or --refresh is passed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateTreeFormat(opts.format); err != nil {
				return err
			}
			return runTree(cmd.Context(), args[0], &opts, cacheTTL)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, dot, svg, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout for text and dot)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "annotate requests with their HTTP method")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if a cached artifact exists")

	return cmd
}

func validateTreeFormat(format string) error {
	switch format {
	case formatText, formatDOT, formatSVG, formatPNG:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown tree format %q (want text, dot, svg or png)", format)
}

func runTree(ctx context.Context, input string, opts *treeOpts, cacheTTL time.Duration) error {
	logger := loggerFromContext(ctx)

	col, warnings, err := loadCollection(input)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		printWarning("%s", w)
	}

	switch opts.format {
	case formatText:
		return writeTreeOutput(opts.output, []byte(renderTextTree(col, opts.detailed)))
	case formatDOT:
		dot := render.ToDOT(col, render.Options{Detailed: opts.detailed})
		return writeTreeOutput(opts.output, []byte(dot))
	}

	// svg and png go through the artifact cache
	out := opts.output
	if out == "" {
		out = sanitize.Clean(col.Info.Name) + "." + opts.format
	}

	data, cached, err := renderGraph(logger, col, opts, cacheTTL)
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", out)
	}

	printSuccess("Rendered %q", col.Info.Name)
	printFile(out)
	printStats(0, 0, cached)
	return nil
}

// renderGraph produces the svg or png artifact, consulting the cache
// keyed by format, detail level and the encoded collection content.
func renderGraph(logger *log.Logger, col *collection.Collection, opts *treeOpts, ttl time.Duration) ([]byte, bool, error) {
	encoded, err := col.Encode()
	if err != nil {
		return nil, false, err
	}

	detail := "plain"
	if opts.detailed {
		detail = "detailed"
	}
	key := cache.Key(opts.format, detail, cache.Hash(encoded))

	var store *cache.Cache
	if c, err := cache.New("", ttl); err == nil {
		store = c
	}

	if store != nil && !opts.refresh {
		if data, ok, err := store.Get(key); err == nil && ok {
			logger.Debugf("Cache hit for %s", key)
			return data, true, nil
		}
	}

	dot := render.ToDOT(col, render.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case formatSVG:
		data, err = render.RenderSVG(dot)
	case formatPNG:
		data, err = render.RenderPNG(dot)
	}
	if err != nil {
		return nil, false, err
	}

	if store != nil {
		if err := store.Set(key, data); err != nil {
			logger.Debugf("Cache write failed: %v", err)
		}
	}

	return data, false, nil
}

func writeTreeOutput(path string, data []byte) error {
	if path == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	printFile(path)
	return nil
}

// renderTextTree renders the hierarchy with box-drawing branches,
// folders highlighted and requests plain.
func renderTextTree(col *collection.Collection, detailed bool) string {
	var b strings.Builder
	b.WriteString(styleTreeFolder.Render(col.Info.Name))
	b.WriteString("\n")
	renderTextNodes(&b, col.Items, "", detailed)
	return b.String()
}

func renderTextNodes(b *strings.Builder, nodes []*collection.Node, prefix string, detailed bool) {
	for i, n := range nodes {
		branch, childPrefix := "├── ", prefix+"│   "
		if i == len(nodes)-1 {
			branch, childPrefix = "└── ", prefix+"    "
		}
		b.WriteString(prefix)
		b.WriteString(styleTreeBranch.Render(branch))

		switch n.Kind {
		case collection.KindFolder:
			b.WriteString(styleTreeFolder.Render(n.Name))
			b.WriteString("\n")
			renderTextNodes(b, n.Children, childPrefix, detailed)
		default:
			label := n.Name
			if detailed {
				if method := render.RequestMethod(n); method != "" {
					label = StyleDim.Render(method) + " " + label
				}
			}
			b.WriteString(styleTreeRequest.Render(label))
			b.WriteString("\n")
		}
	}
}
