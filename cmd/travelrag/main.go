package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"travelrag/internal/compose"
	"travelrag/internal/config"
	"travelrag/internal/domain"
	oaiembed "travelrag/internal/embedding/openai"
	"travelrag/internal/embedding/tfidf"
	"travelrag/internal/enrich"
	"travelrag/internal/extract"
	"travelrag/internal/llm"
	"travelrag/internal/loader"
	"travelrag/internal/logging"
	"travelrag/internal/ner"
	"travelrag/internal/pipeline"
	"travelrag/internal/rank"
	"travelrag/internal/summarizer"
	"travelrag/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, corpusDir string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/travelrag/config.yaml if not provided)")
	flag.StringVar(&corpusDir, "corpus", "data/corpus", "Directory with corpus files (.txt/.json/.csv)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newFileLogger(cfg.Logging.Dir)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	documents, err := loadCorpus(corpusDir, logger)
	if err != nil {
		log.Fatalf("failed to load corpus: %v", err)
	}

	pipe, err := assemble(cfg, documents, logger)
	if err != nil {
		log.Fatalf("failed to assemble pipeline: %v", err)
	}

	overview := corpusOverview(documents)
	m := tui.New(&assistant{pipe: pipe, documents: documents}, overview)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

// assistant adapts the pipeline to the TUI port: interactive queries run
// against the whole corpus with no pre-filters.
type assistant struct {
	pipe      *pipeline.Pipeline
	documents []domain.Document
}

func (a *assistant) Respond(ctx context.Context, query string) (pipeline.Result, error) {
	return a.pipe.Respond(ctx, query, a.documents, domain.FilterCriteria{})
}

func loadCorpus(dir string, logger *zap.Logger) ([]domain.Document, error) {
	articles, err := loader.New(logger).LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return loader.NewSplitter(5, 1).SplitAll(articles), nil
}

func corpusOverview(documents []domain.Document) string {
	var sb strings.Builder
	for _, doc := range documents {
		sb.WriteString("\n")
		sb.WriteString(string(doc))
	}
	overview, err := summarizer.NewFrequencySummarizer().Summarize(sb.String(), 2)
	if err != nil || overview == "" {
		return "Travel corpus loaded."
	}
	return overview
}

func assemble(cfg *config.AppConfig, documents []domain.Document, logger *zap.Logger) (*pipeline.Pipeline, error) {
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.New()
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := oaiembed.NewClient(oaiembed.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}
	texts := make([]string, len(documents))
	for i, d := range documents {
		texts[i] = string(d)
	}
	if err := emb.Prepare(texts); err != nil {
		return nil, err
	}

	client, err := llm.NewClient(llm.Config{
		BaseURL:   cfg.LLM.BaseURL,
		APIKeyEnv: cfg.LLM.APIKeyEnv,
		Model:     cfg.LLM.Model,
		Timeout:   time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	chat := llm.NewOpenAI(client, cfg.LLM.Model)

	var recognizer domain.EntityRecognizer
	switch cfg.NER.Type {
	case "heuristic", "":
		recognizer = ner.NewHeuristic()
	case "llm":
		recognizer = ner.NewLLM(client, cfg.LLM.Model, logger)
	default:
		log.Fatalf("unknown ner type: %s", cfg.NER.Type)
	}

	var enrichOpts []enrich.Option
	if key := os.Getenv(cfg.Enrichment.GeoapifyKeyEnv); key != "" {
		enrichOpts = append(enrichOpts, enrich.WithAttractions(enrich.NewGeoapifyClient(enrich.GeoapifyConfig{
			APIKey:  key,
			Limit:   cfg.Enrichment.MaxAttractions,
			Timeout: time.Duration(cfg.Enrichment.TimeoutSecs) * time.Second,
		})))
	}

	var links *compose.LinkChecker
	if cfg.LinkCheck.Enabled {
		links = compose.NewLinkChecker(time.Duration(cfg.LinkCheck.TimeoutSecs)*time.Second, cfg.LinkCheck.MaxLinks, logger)
	}

	return pipeline.New(pipeline.Deps{
		Extractor: extract.New(recognizer, logger),
		Ranker:    rank.New(emb),
		Enricher:  enrich.New(logger, enrichOpts...),
		LLM:       chat,
		Links:     links,
		Sinks: []domain.InteractionSink{
			logging.NewTextLogger(cfg.Logging.Dir),
			logging.NewCSVLogger(cfg.Logging.Dir),
		},
		Logger: logger,
	}, pipeline.Config{
		TopK:        cfg.Retrieval.TopK,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}), nil
}

// newFileLogger writes structured logs to a file so log lines never corrupt
// the terminal UI.
func newFileLogger(dir string) (*zap.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{filepath.Join(dir, "travelrag.log")}
	zcfg.ErrorOutputPaths = zcfg.OutputPaths
	return zcfg.Build()
}
