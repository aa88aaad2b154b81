// Package pipeline runs a full website quality assessment: multi-viewport
// capture, body text extraction, the five-member expert panel alongside
// the perception model, and the final consensus aggregation.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sitejury/sitejury/capture"
	"github.com/sitejury/sitejury/consensus"
	"github.com/sitejury/sitejury/experts"
	"github.com/sitejury/sitejury/extract"
	"github.com/sitejury/sitejury/observability"
	"github.com/sitejury/sitejury/page"
	"github.com/sitejury/sitejury/perception"
)

// Report is the full output of one assessment run.
type Report struct {
	URL         string               `json:"url"`
	Captures    *capture.Bundle      `json:"captures"`
	Evaluations []experts.Evaluation `json:"evaluations"`
	Perception  *perception.Score    `json:"perception"`
	Consensus   *consensus.Result    `json:"consensus"`
	ElapsedMS   int64                `json:"elapsed_ms"`
}

// Pipeline assesses websites. It is safe to reuse for sequential runs;
// each run owns its own browser process.
type Pipeline struct {
	cfg     *Config
	log     *slog.Logger
	panel   *experts.Panel
	history *observability.Store // nil disables run history
}

// New creates a Pipeline. A nil history store disables persistence.
func New(cfg *Config, log *slog.Logger, history *observability.Store) *Pipeline {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		cfg:     cfg,
		log:     log,
		panel:   experts.NewPanel(log),
		history: history,
	}
}

// Assess captures pageURL, runs the expert panel and perception model,
// and aggregates a consensus verdict. Screenshots and the markdown
// snapshot are written under outDir; empty means the configured default.
func (p *Pipeline) Assess(ctx context.Context, pageURL, outDir string) (*Report, error) {
	started := time.Now()
	if outDir == "" {
		outDir = p.cfg.OutDir
	}

	var runID string
	if p.history != nil {
		runID = p.history.StartRun(ctx, pageURL)
	}

	report, err := p.assess(ctx, pageURL, outDir, runID)

	if p.history != nil {
		sum := observability.RunSummary{Err: err, Duration: time.Since(started)}
		if report != nil && report.Consensus != nil {
			sum.Industry = report.Consensus.Industry
			sum.WeightedScore = report.Consensus.WeightedScore
			sum.Verdict = report.Consensus.FinalVerdict.String()
			sum.ExpertAgreement = report.Consensus.ExpertAgreement
		}
		p.history.FinishRun(ctx, runID, sum)
	}
	if err != nil {
		return nil, err
	}
	report.ElapsedMS = time.Since(started).Milliseconds()
	return report, nil
}

func (p *Pipeline) assess(ctx context.Context, pageURL, outDir, runID string) (*Report, error) {
	engine := capture.NewEngine(capture.EngineConfig{
		RemoteURL:   p.cfg.Browser.Remote,
		NavTimeout:  p.cfg.Browser.NavTimeout,
		SettleDelay: p.cfg.Browser.SettleDelay,
		Logger:      p.log,
	})
	if err := engine.Start(ctx); err != nil {
		return nil, fmt.Errorf("pipeline: start browser: %w", err)
	}
	defer engine.Close()

	captureStart := time.Now()
	bundle, desktopPage, err := capture.New(engine, p.log).Run(ctx, pageURL, outDir)
	p.logStage(ctx, runID, "capture", map[string]string{"out_dir": outDir}, time.Since(captureStart), err)
	if err != nil {
		return nil, err
	}
	defer desktopPage.Close()

	bodyText := extract.BodyText(bundle.HTML, pageURL)
	if err := extract.Snapshot(bundle.HTML, filepath.Join(outDir, "page.md")); err != nil {
		// Snapshot is a convenience artifact, not part of the verdict.
		p.log.Warn("pipeline: markdown snapshot failed", "error", err)
	}

	q := page.NewLive(ctx, desktopPage)
	in := experts.Inputs{
		URL:      pageURL,
		HTML:     bundle.HTML,
		BodyText: bodyText,
		Query:    q,
		Captures: bundle,
	}

	var (
		evals []experts.Evaluation
		perc  *perception.Score
	)
	evalStart := time.Now()
	var g errgroup.Group
	g.Go(func() error {
		evals = p.panel.Run(in)
		return nil
	})
	g.Go(func() error {
		var perr error
		perc, perr = perception.Assess(q, bundle.HTML, bodyText, bundle)
		if perr != nil {
			return fmt.Errorf("pipeline: perception: %w", perr)
		}
		return nil
	})
	err = g.Wait()
	p.logStage(ctx, runID, "evaluate", stageScores(evals), time.Since(evalStart), err)
	if err != nil {
		return nil, err
	}

	cons, err := consensus.Evaluate(evals, pageURL, bodyText)
	p.logStage(ctx, runID, "consensus", nil, 0, err)
	if err != nil {
		return nil, fmt.Errorf("pipeline: consensus: %w", err)
	}

	return &Report{
		URL:         pageURL,
		Captures:    bundle,
		Evaluations: evals,
		Perception:  perc,
		Consensus:   cons,
	}, nil
}

func (p *Pipeline) logStage(ctx context.Context, runID, stage string, detail any, d time.Duration, err error) {
	if p.history == nil {
		return
	}
	p.history.LogStage(ctx, runID, stage, detail, d, err)
}

func stageScores(evals []experts.Evaluation) map[string]float64 {
	if len(evals) == 0 {
		return nil
	}
	out := make(map[string]float64, len(evals))
	for _, ev := range evals {
		out[string(ev.Agent)] = ev.Score
	}
	return out
}
