package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/cache"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/classify"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/consolidate"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/extract"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/llm"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/score"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/validate"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/worker"
)

// Pipeline orchestrates the complete consolidation process: load,
// extract, consolidate, validate, render.
type Pipeline struct {
	extractor    *extract.Extractor
	consolidator *consolidate.Consolidator
	validator    *validate.Validator
	renderer     *Renderer
	summarizer   *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	cache        cache.Cache     // nil when caching disabled
	config       *model.Config
	logger       *slog.Logger
}

// NewPipeline creates a new pipeline with the given configuration.
func NewPipeline(cfg *model.Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	classifier := classify.New(cfg)

	validator, err := validate.New()
	if err != nil {
		return nil, fmt.Errorf("init validator: %w", err)
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			logger.Warn("failed to initialize LLM provider", "error", err)
		} else {
			summarizer = s
		}
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			c = cache.NewDiskCache(cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			c = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
		}
	}

	return &Pipeline{
		extractor:    extract.New(cfg, classifier),
		consolidator: consolidate.New(cfg, classifier),
		validator:    validator,
		renderer:     NewRenderer(cfg.Output.IncludeMarkdown),
		summarizer:   summarizer,
		cache:        c,
		config:       cfg,
		logger:       logger,
	}, nil
}

// CaseResult contains the complete output of processing one case folder.
type CaseResult struct {
	CaseID        string
	Record        *model.CaseRecord
	Signals       []score.Signal
	Summary       *model.LLMSummary
	DocumentCount int
}

// extractOutcome carries one finished extraction out of the pool.
type extractOutcome struct {
	result model.ExtractionResult
	err    error
}

// extractDocument runs extraction for one document, consulting the cache
// first when enabled.
func (p *Pipeline) extractDocument(doc model.SourceDocument) model.ExtractionResult {
	var key string
	if p.cache != nil {
		key = cache.Key(string(doc.Type), doc.Text)
		if data, ok := p.cache.Get(key); ok {
			var cached model.ExtractionResult
			if err := json.Unmarshal(data, &cached); err == nil && cached.SourceDocumentID == doc.ID {
				p.logger.Debug("extraction cache hit", "document", doc.ID)
				return cached
			}
		}
	}

	res := p.extractor.Extract(doc)

	if p.cache != nil {
		if data, err := json.Marshal(res); err == nil {
			if err := p.cache.Set(key, data, p.config.Cache.TTL); err != nil {
				p.logger.Warn("extraction cache write failed", "document", doc.ID, "error", err)
			}
		}
	}

	return res
}

// ProcessCase runs the full pipeline for one case folder and returns the
// hydrated, validated case record.
func (p *Pipeline) ProcessCase(ctx context.Context, dir string) (*CaseResult, error) {
	caseID, docs, err := LoadCaseFolder(dir)
	if err != nil {
		return nil, err
	}

	p.logger.Info("processing case", "case_id", caseID, "documents", len(docs))

	results, err := p.extractAll(ctx, docs)
	if err != nil {
		return nil, err
	}

	record, signals, err := p.consolidator.Consolidate(caseID, results)
	if err != nil {
		return nil, err
	}

	if verrs := p.validator.Validate(record); len(verrs) > 0 {
		return nil, fmt.Errorf("case %s failed validation: %w", caseID, verrs)
	}

	result := &CaseResult{
		CaseID:        caseID,
		Record:        record,
		Signals:       signals,
		DocumentCount: len(docs),
	}

	// LLM summary runs after validation and never alters the record.
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *record)
		if err != nil {
			p.logger.Warn("LLM summary generation failed", "case_id", caseID, "error", err)
		} else {
			result.Summary = summary
		}
	}

	return result, nil
}

// extractAll extracts every document concurrently, then restores a
// deterministic order so consolidation is independent of completion order.
func (p *Pipeline) extractAll(ctx context.Context, docs []model.SourceDocument) ([]model.ExtractionResult, error) {
	workers := p.config.Concurrency.ExtractionWorkers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(docs) {
		workers = len(docs)
	}

	pool := worker.NewPool[extractOutcome](workers)
	pool.Start()

	for _, doc := range docs {
		pool.Submit(func(jobCtx context.Context) extractOutcome {
			if err := jobCtx.Err(); err != nil {
				return extractOutcome{err: err}
			}
			return extractOutcome{result: p.extractDocument(doc)}
		})
	}

	outcomes := pool.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]model.ExtractionResult, 0, len(outcomes))
	for _, o := range outcomes {
		if o.err != nil {
			return nil, fmt.Errorf("extraction: %w", o.err)
		}
		results = append(results, o.result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].SourceDocumentID < results[j].SourceDocumentID
	})

	return results, nil
}

// RenderResult writes the case record and companion artifacts.
func (p *Pipeline) RenderResult(result *CaseResult, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(result.Record, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" && p.renderer.includeMarkdown {
		if err := p.renderer.RenderMarkdown(result.Record, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if result.Summary != nil && result.Summary.Enabled && jsonPath != "" {
		llmPath := llmMarkdownPath(jsonPath)
		if err := p.renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(result.Summary), llmPath); err != nil {
			p.logger.Warn("failed to write LLM summary", "error", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM Summary: %s\n", llmPath)
		}
	}

	p.renderer.RenderSummary(result.Record, result.Signals)

	return nil
}
