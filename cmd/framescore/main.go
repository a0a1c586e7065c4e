package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/cheggaaa/pb/v3"

	"github.com/gwlsn/framescore/internal/asset"
	"github.com/gwlsn/framescore/internal/batch"
	"github.com/gwlsn/framescore/internal/config"
	"github.com/gwlsn/framescore/internal/feature"
	"github.com/gwlsn/framescore/internal/logger"
	"github.com/gwlsn/framescore/internal/runner"
	"github.com/gwlsn/framescore/internal/store"
)

// report is the JSON shape printed per scored asset
type report struct {
	Asset      string               `json:"asset"`
	RunnerID   string               `json:"runner_id"`
	Score      float64              `json:"score"`
	FrameCount int                  `json:"frame_count"`
	Cached     bool                 `json:"cached,omitempty"`
	Values     map[string][]float64 `json:"values,omitempty"`
}

func main() {
	configPath := flag.String("config", "", "Path to config file (default: ./framescore.yaml)")
	runnerName := flag.String("runner", "vmaf", "Runner to use: "+strings.Join(runner.Names(), ", "))
	refPath := flag.String("ref", "", "Reference video path")
	disPath := flag.String("dis", "", "Distorted video path")
	width := flag.Int("width", 0, "Frame width")
	height := flag.Int("height", 0, "Frame height")
	pixFmt := flag.String("pix-fmt", "yuv420p", "Pixel format")
	batchFile := flag.String("batch", "", "Batch file: one 'ref dis width height pixfmt' line per asset")
	parallel := flag.Int("parallel", 0, "Concurrent assets in batch mode (default: config max_parallel)")
	modelPath := flag.String("model", "", "Override model artifact path")
	disableClip := flag.Bool("disable-clip", false, "Disable score clipping")
	enableTransform := flag.Bool("enable-transform", false, "Enable score transform")
	phoneModel := flag.Bool("phone-model", false, "Use phone model (native runner only)")
	disableAVX := flag.Bool("disable-avx", false, "Disable AVX (native runner only)")
	perFrame := flag.Bool("per-frame", false, "Include per-frame sequences in output")
	flag.Parse()

	cfgPath := *configPath
	if cfgPath == "" {
		if envPath := os.Getenv("FRAMESCORE_CONFIG"); envPath != "" {
			cfgPath = envPath
		} else {
			cfgPath = "framescore.yaml"
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Init("info", "text")
		logger.Error("Could not load config", "path", cfgPath, "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if envCache := os.Getenv("FRAMESCORE_CACHE"); envCache != "" {
		cfg.CachePath = envCache
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid config", "error", err)
		os.Exit(1)
	}

	opts := runner.Options{
		ModelFilepath:        *modelPath,
		DisableClipScore:     *disableClip,
		EnableTransformScore: *enableTransform,
		PhoneModel:           *phoneModel,
		DisableAVX:           *disableAVX,
	}
	deps := runner.Deps{
		Provider: feature.NewExecProvider(cfg.FeatureExtractorPath),
		Cfg:      cfg,
	}
	rn, err := runner.New(*runnerName, deps, opts)
	if err != nil {
		logger.Error("Could not create runner", "runner", *runnerName, "error", err)
		os.Exit(1)
	}

	var st store.Store
	if cfg.CachePath != "" {
		st, err = store.NewSQLiteStore(cfg.CachePath)
		if err != nil {
			logger.Error("Could not open result cache", "path", cfg.CachePath, "error", err)
			os.Exit(1)
		}
		defer st.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *batchFile != "" {
		assets, err := readBatchFile(*batchFile)
		if err != nil {
			logger.Error("Could not read batch file", "path", *batchFile, "error", err)
			os.Exit(1)
		}
		n := *parallel
		if n < 1 {
			n = cfg.MaxParallel
		}
		if err := runBatch(ctx, rn, st, assets, n, *perFrame); err != nil {
			logger.Error("Batch scoring failed", "error", err)
			os.Exit(1)
		}
		return
	}

	a := asset.Asset{
		RefPath: *refPath,
		DisPath: *disPath,
		Width:   *width,
		Height:  *height,
		PixFmt:  *pixFmt,
	}
	if err := a.Validate(); err != nil {
		logger.Error("Invalid asset", "error", err)
		os.Exit(1)
	}

	outcomes, err := batch.Run(ctx, rn, st, []asset.Asset{a}, 1, nil)
	if err != nil {
		logger.Error("Scoring failed", "error", err)
		os.Exit(1)
	}
	printReport(outcomes[0], *perFrame)
}

func runBatch(ctx context.Context, rn runner.Runner, st store.Store,
	assets []asset.Asset, parallel int, perFrame bool) error {

	logger.Info("Starting batch scoring",
		"runner", rn.ID().String(),
		"assets", len(assets),
		"parallel", parallel)

	bar := pb.StartNew(len(assets))
	outcomes, err := batch.Run(ctx, rn, st, assets, parallel, func(batch.Outcome) {
		bar.Increment()
	})
	bar.Finish()
	if err != nil {
		return err
	}

	for _, out := range outcomes {
		printReport(out, perFrame)
	}
	return nil
}

func printReport(out batch.Outcome, perFrame bool) {
	score, err := out.Result.AggregateScore()
	if err != nil {
		logger.Error("Result has no scores", "asset", out.Asset.String(), "error", err)
		return
	}
	frames, _ := out.Result.FrameCount()

	r := report{
		Asset:      out.Asset.String(),
		RunnerID:   out.Result.RunnerID,
		Score:      score,
		FrameCount: frames,
		Cached:     out.Cached,
	}
	if perFrame {
		r.Values = out.Result.Values
	}

	data, err := json.Marshal(r)
	if err != nil {
		logger.Error("Could not encode report", "error", err)
		return
	}
	fmt.Println(string(data))
}

// readBatchFile parses one asset per line: "ref dis width height pixfmt".
// Blank lines and lines starting with '#' are skipped.
func readBatchFile(path string) ([]asset.Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var assets []asset.Asset
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 5 {
			return nil, fmt.Errorf("line %d: want 'ref dis width height pixfmt', got %d fields", lineNo, len(fields))
		}
		w, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad width: %w", lineNo, err)
		}
		h, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad height: %w", lineNo, err)
		}

		a := asset.Asset{
			RefPath: fields[0],
			DisPath: fields[1],
			Width:   w,
			Height:  h,
			PixFmt:  fields[4],
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		assets = append(assets, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("batch file %s has no assets", path)
	}
	return assets, nil
}
