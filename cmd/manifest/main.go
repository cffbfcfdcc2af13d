// Command manifest checks a resource manifest: every entry parses, names are
// unique, and every referenced file exists under the asset root. With
// -load it also decodes every asset.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/experience/logging"
	"github.com/milk9111/experience/resources"
)

func main() {
	manifest := flag.String("manifest", resources.DefaultManifest, "manifest file (falls back to the embedded default)")
	assets := flag.String("assets", "assets", "asset root")
	load := flag.Bool("load", false, "decode every asset, not just check it exists")
	timeout := flag.Duration("timeout", resources.DefaultTimeout, "load timeout with -load")
	verbose := flag.Bool("v", false, "log each asset as it loads")
	flag.Parse()

	if err := run(*manifest, *assets, *load, *timeout, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(manifest, assets string, load bool, timeout time.Duration, verbose bool) error {
	sources, err := resources.LoadManifest(manifest)
	if err != nil {
		return err
	}
	fsys := os.DirFS(assets)

	missing := checkFiles(fsys, sources)
	for _, err := range missing {
		fmt.Println("missing:", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%d of %d sources reference missing files", len(missing), len(sources))
	}
	fmt.Printf("%d sources ok\n", len(sources))
	if !load {
		return nil
	}

	logger, err := logging.New(verbose)
	if err != nil {
		return err
	}
	if !verbose {
		logger = logging.Nop()
	}
	res, err := resources.New(context.Background(), sources, resources.NewFSLoaders(fsys, nil),
		resources.WithTimeout(timeout),
		resources.WithLogger(logger))
	if err != nil {
		return err
	}
	res.On(resources.EventLoaded, func(args ...any) {
		logger.Info("loaded", zap.Any("source", args[0]), zap.Any("progress", args[1]))
	})

	start := time.Now()
	if err := res.Wait(context.Background()); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	fmt.Printf("loaded %d sources in %s\n", res.Loaded(), time.Since(start).Round(time.Millisecond))
	return nil
}

func checkFiles(fsys fs.FS, sources []resources.Source) []error {
	var errs []error
	for _, s := range sources {
		for _, p := range s.Paths {
			if _, err := fs.Stat(fsys, path.Clean("/" + p)[1:]); err != nil {
				errs = append(errs, fmt.Errorf("%s (%s): %w", s.Name, s.Kind, err))
			}
		}
	}
	return errs
}
