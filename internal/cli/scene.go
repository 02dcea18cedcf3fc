package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tether/pkg/cache"
	"github.com/matzehuels/tether/pkg/connector"
	tethererrors "github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/layout"
	"github.com/matzehuels/tether/pkg/layout/dotlayout"
	"github.com/matzehuels/tether/pkg/layout/mongolayout"
	"github.com/matzehuels/tether/pkg/pipeline"
	"github.com/matzehuels/tether/pkg/render"
	"github.com/matzehuels/tether/pkg/scene"
)

type sceneFlags struct {
	watch  bool
	dot    string
	format string
	output string
	cache  cacheFlags
	mongo  mongoFlags
}

// mongoFlags select a MongoDB collection of element rectangles.
type mongoFlags struct {
	uri        string
	db         string
	collection string
}

func (f *mongoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.uri, "mongo", os.Getenv(envMongoURI), "MongoDB URI holding element layouts (env "+envMongoURI+")")
	cmd.Flags().StringVar(&f.db, "mongo-db", "tether", "MongoDB database")
	cmd.Flags().StringVar(&f.collection, "mongo-collection", "elements", "MongoDB collection")
}

func (f *mongoFlags) connect(ctx context.Context) (*mongolayout.Store, error) {
	var store *mongolayout.Store
	err := withSpinner(ctx, "Connecting to MongoDB...", "Connected to MongoDB", func(ctx context.Context) error {
		var cerr error
		store, cerr = mongolayout.Connect(ctx, f.uri, f.db, f.collection)
		return cerr
	})
	return store, err
}

// sceneCommand creates the scene command.
func (c *CLI) sceneCommand() *cobra.Command {
	var f sceneFlags

	cmd := &cobra.Command{
		Use:   "scene FILE",
		Short: "Compute every link of a scene file",
		Long: `Compute every link of a TOML or JSON scene file.

Element rectangles come from the scene itself, optionally layered over the
nodes of a Graphviz layout (--dot) or rectangles stored in MongoDB (--mongo).
Links whose elements have no rectangle are reported as pending.`,
		Example: `  tether scene diagram.toml
  tether scene links.toml --dot graph.dot --format svg -o out.svg
  tether scene diagram.toml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(f.format); err != nil {
				return err
			}
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, f.cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			var external layout.Provider
			if f.mongo.uri != "" {
				store, err := f.mongo.connect(ctx)
				if err != nil {
					return err
				}
				defer store.Close(context.Background())
				external = store
			}

			run := func() error {
				return c.runScene(cmd, runner, args[0], external, f)
			}
			if !f.watch {
				return run()
			}
			if err := run(); err != nil {
				printError("%s", tethererrors.UserMessage(err))
			}

			files := []string{args[0]}
			if f.dot != "" {
				files = append(files, f.dot)
			}
			printInfo("Watching %s (ctrl+c to stop)", filepath.Base(args[0]))
			last := digest(files)
			err = watchFiles(ctx, files, func() {
				d := digest(files)
				if d == last {
					c.Logger.Debug("inputs unchanged, skipping")
					return
				}
				last = d
				if err := run(); err != nil {
					printError("%s", tethererrors.UserMessage(err))
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "recompute when the scene or DOT file changes")
	cmd.Flags().StringVar(&f.dot, "dot", "", "Graphviz DOT file positioning the elements")
	cmd.Flags().StringVarP(&f.format, "format", "f", formatJSON, "output format: json, svg, text")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	f.cache.register(cmd)
	f.mongo.register(cmd)
	return cmd
}

// digest hashes the contents of files. Unreadable files hash as empty so
// that a later successful read counts as a change.
func digest(files []string) string {
	var buf []byte
	for _, f := range files {
		data, _ := os.ReadFile(f)
		buf = append(buf, data...)
		buf = append(buf, 0)
	}
	return cache.Hash(buf)
}

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatSVG, formatText:
		return nil
	}
	return tethererrors.New(tethererrors.ErrCodeInvalidInput, "unknown format %q (want json, svg or text)", format)
}

// runScene loads, computes and writes one scene.
func (c *CLI) runScene(cmd *cobra.Command, runner *pipeline.Runner, file string, external layout.Provider, f sceneFlags) error {
	ctx := cmd.Context()
	prog := newProgress(c.Logger)

	sc, err := loadScene(file, f.dot != "" || external != nil)
	if err != nil {
		return err
	}

	var extra []render.Element
	if f.dot != "" {
		res, err := layoutDOT(ctx, f.dot)
		if err != nil {
			return err
		}
		for _, n := range res.Nodes {
			extra = append(extra, render.Element{ID: n.Name, Rect: n.Rect})
		}
		external = layout.Chain(res.Provider(), external)
	}

	provider := layout.Provider(sc.Provider())
	if external != nil {
		provider = layout.Chain(provider, external)
	}

	res, err := runner.ComputeScene(ctx, sc, provider)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Computed %d links", res.Stats.Computed))

	for _, id := range res.Pending() {
		printWarning("%s: waiting for layout", id)
	}
	for _, l := range res.Links {
		if l.Error != "" {
			printError("%s: %s", l.ID, l.Error)
		}
	}
	printStats(res.Stats.Links, res.Stats.Pending, res.Stats.Failed,
		res.Stats.Computed > 0 && res.Stats.CacheHits == res.Stats.Computed)

	return writeOutput(cmd, f.output, func(w io.Writer) error {
		return writeScene(w, f.format, sc, res, extra)
	})
}

// loadScene reads a scene file. With an external layout, links may refer
// to elements the file does not declare.
func loadScene(file string, external bool) (*scene.Scene, error) {
	if !external {
		return scene.Load(file)
	}
	format, err := scene.FormatFromPath(file)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	sc, err := scene.Parse(data, format)
	if err != nil {
		return nil, err
	}
	if err := sc.ValidateElements(); err != nil {
		return nil, err
	}
	if err := sc.ValidateLinks(); err != nil {
		return nil, err
	}
	return sc, nil
}

func layoutDOT(ctx context.Context, file string) (*dotlayout.Result, error) {
	dot, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read DOT file: %w", err)
	}
	name := filepath.Base(file)
	var res *dotlayout.Result
	err = withSpinner(ctx, "Laying out "+name+"...", "Laid out "+name, func(ctx context.Context) error {
		var lerr error
		res, lerr = dotlayout.Layout(ctx, dot)
		return lerr
	})
	return res, err
}

func writeScene(w io.Writer, format string, sc *scene.Scene, res *pipeline.SceneResult, extra []render.Element) error {
	switch format {
	case formatSVG:
		geos := make([]connector.Geometry, 0, len(res.Links))
		for _, l := range res.Links {
			if l.Geometry != nil {
				geos = append(geos, *l.Geometry)
			}
		}
		elements := extra
		for _, e := range sc.Elements {
			elements = append(elements, render.Element{ID: e.ID, Rect: e.Rect()})
		}
		_, err := w.Write(render.SVG(geos, render.WithElements(elements), render.WithOrigin(sc.Origin())))
		return err
	case formatText:
		for _, l := range res.Links {
			switch {
			case l.Geometry != nil:
				printKeyValue(w, l.ID, l.Geometry.D)
			case l.Pending:
				printKeyValue(w, l.ID, StyleWarning.Render("pending"))
			default:
				printKeyValue(w, l.ID, StyleWarning.Render(l.Error))
			}
		}
		printKeyValue(w, "box", formatBox(res.Box))
		return nil
	}
	return writeJSON(w, res)
}
