// Command pansharpen calibrates a Landsat scene, upscales its visible bands
// onto the panchromatic grid, applies the Brovey transform and writes an RGB
// composite GeoTIFF.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/wgdzlh/pansharp"
	"github.com/wgdzlh/pansharp/geotiff"
	"github.com/wgdzlh/pansharp/log"
	"github.com/wgdzlh/pansharp/utils"

	"go.uber.org/zap"
)

const scenePrefix = "LC09_L1TP_009029_20230922_20230922_02_T1_"

func main() {
	redPath := flag.String("red", scenePrefix+"B4-subset.tif", "red band (B4) DN file")
	greenPath := flag.String("green", scenePrefix+"B3-subset.tif", "green band (B3) DN file")
	bluePath := flag.String("blue", scenePrefix+"B2-subset.tif", "blue band (B2) DN file")
	panPath := flag.String("pan", scenePrefix+"B8-subset.tif", "panchromatic band (B8) DN file")
	outPath := flag.String("o", pansharp.COMPOSITE_NAME, "output composite file")
	cfgPath := flag.String("config", "", "optional YAML settings file")
	workDir := flag.String("intermediates", "", "directory receiving per-stage rasters (disabled when empty)")
	keep := flag.Bool("keep", false, "keep intermediate rasters when the run fails")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	if err := log.SetLevel(*logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	paths := map[pansharp.BandID]string{
		pansharp.Red:   *redPath,
		pansharp.Green: *greenPath,
		pansharp.Blue:  *bluePath,
		pansharp.Pan:   *panPath,
	}
	if err := run(paths, *outPath, *cfgPath, *workDir, *keep, os.Stdout); err != nil {
		log.Error("pansharpen failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(paths map[pansharp.BandID]string, out, cfgPath, workDir string, keep bool, w io.Writer) (err error) {
	start := time.Now()
	var settings pansharp.Settings
	if cfgPath != "" {
		if settings, err = pansharp.LoadSettings(cfgPath); err != nil {
			return
		}
	}
	opts, err := settings.Options()
	if err != nil {
		return
	}
	tb := geotiff.NewToolbox(settings.CreationOptions...)
	rp := geotiff.NewSRSReprojector()
	defer rp.Close()
	opts = append(opts, pansharp.WithReprojector(rp))

	if workDir != "" {
		var dir string
		if dir, err = utils.GetUniqSubDir(workDir); err != nil {
			return
		}
		sink := geotiff.NewDirSink(dir, tb)
		opts = append(opts, pansharp.WithStageSink(sink))
		log.Info("writing intermediates", zap.String("dir", dir))
		defer func() {
			if err != nil && !keep {
				sink.Cleanup()
				os.Remove(dir)
			}
		}()
	}

	scene, err := tb.ReadScene(paths)
	if err != nil {
		return
	}
	ret, err := pansharp.NewSharpener(opts...).Sharpen(scene)
	if err != nil {
		return
	}
	if err = tb.WriteComposite(out, ret.Composite); err != nil {
		return
	}
	printReport(w, out, ret, time.Since(start))
	return
}

func printReport(w io.Writer, out string, ret *pansharp.Result, took time.Duration) {
	c := ret.Composite
	fmt.Fprintf(w, "== Composite %s (run %s) ==\n", out, utils.GetNowTimeTag())
	fmt.Fprintf(w, "size: %d x %d (%s pixels), zero intensity pixels: %s\n",
		c.Width, c.Height, utils.FormatCount(c.Size()), utils.FormatCount(ret.ZeroIntensity))
	fmt.Fprintf(w, "%s %12s %12s %12s %12s %12s\n", utils.PadRight("band", 6), "valid", "min", "max", "mean", "std")
	for i, b := range c.Bands {
		s := pansharp.BandStats(b)
		fmt.Fprintf(w, "%s %12s %12s %12s %12s %12s\n", utils.PadRight(c.ColorInterp[i].String(), 6),
			utils.FormatCount(s.Count), utils.FormatFloat(s.Min, 3), utils.FormatFloat(s.Max, 3),
			utils.FormatFloat(s.Mean, 3), utils.FormatFloat(s.StdDev, 3))
	}
	fmt.Fprintf(w, "took %v\n", took.Round(time.Millisecond))
}
