// Command mcprice is the CLI driver for the pricing engine: it reads a
// pricing request as JSON from stdin, dispatches it across the
// configured thread count, and writes the priced result as JSON to
// stdout, with structured progress logging to stderr.
package main

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"github.com/xhhuango/json"
	"go.uber.org/zap"

	"github.com/bcdannyboy/mcengine/dispatch"
	"github.com/bcdannyboy/mcengine/simcontext"
	"github.com/bcdannyboy/mcengine/version"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		// A malformed .env is worth surfacing; a missing one is the
		// common case for a CLI tool and is not an error.
		os.Stderr.WriteString("mcprice: warning: " + err.Error() + "\n")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("mcprice starting", zap.String("version", version.Info().String()))

	req, err := readRequest(os.Stdin)
	if err != nil {
		logger.Fatal("failed to read request", zap.Error(err))
	}

	ctx := simcontext.New(req.Seed)
	if req.Paths > 0 {
		ctx.SetPathCount(req.Paths)
	} else {
		req.Paths = ctx.PathCount()
	}
	if req.Steps > 0 {
		ctx.SetStepCount(req.Steps)
	} else {
		req.Steps = ctx.StepCount()
	}
	if req.Threads > 0 {
		ctx.SetThreads(req.Threads)
	} else {
		ctx.SetThreads(dispatch.DefaultThreads())
	}
	ctx.SetAntithetic(req.Antithetic)

	logger.Info("pricing request",
		zap.String("instrument", req.Instrument),
		zap.String("model", req.Model),
		zap.Int("paths", req.Paths),
		zap.Int("steps", req.Steps),
		zap.Int("threads", ctx.Threads()),
		zap.Uint64("seed", req.Seed),
	)

	var bar *mpb.Bar
	var progress *mpb.Progress
	if isatty.IsTerminal(os.Stderr.Fd()) {
		progress = mpb.New(mpb.WithOutput(os.Stderr), mpb.WithWidth(64))
		bar = progress.AddBar(int64(ctx.Threads()),
			mpb.PrependDecorators(
				decor.Name("pricing"),
				decor.Percentage(decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d / %d threads)", decor.WCSyncSpace),
			),
		)
	}

	onWorkerDone := func(thread int) {
		if bar != nil {
			bar.Increment()
		}
	}

	result, err := Price(ctx, req, onWorkerDone)
	if progress != nil {
		progress.Wait()
	}
	if err != nil {
		logger.Error("pricing failed", zap.Error(err), zap.String("last_error", ctx.LastError().String()))
		writeResult(os.Stdout, Result{})
		os.Exit(1)
	}

	logger.Info("pricing complete",
		zap.Float64("price", result.Price),
		zap.Float64("std_error", result.SampleStdError),
	)

	if err := writeResult(os.Stdout, result); err != nil {
		logger.Fatal("failed to write result", zap.Error(err))
	}
}

func readRequest(r io.Reader) (Request, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return Request{}, err
	}
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Request{}, err
	}
	return req, nil
}

func writeResult(w io.Writer, result Result) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	_, err = w.Write(append(raw, '\n'))
	return err
}
