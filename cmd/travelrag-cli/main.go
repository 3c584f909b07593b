package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

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
)

func main() {
	_ = godotenv.Load()

	var cfgPath, corpusDir string
	var compare bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/travelrag/config.yaml if not provided)")
	flag.StringVar(&corpusDir, "corpus", "data/corpus", "Directory with corpus files (.txt/.json/.csv)")
	flag.BoolVar(&compare, "compare", false, "Also generate a no-retrieval answer and record which one you prefer")
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

	articles, err := loader.New(logger).LoadDir(corpusDir)
	if err != nil {
		log.Fatalf("failed to load corpus: %v", err)
	}
	documents := loader.NewSplitter(5, 1).SplitAll(articles)
	fmt.Printf("Loaded %d documents.\n", len(documents))

	pipe, err := assemble(cfg, documents, logger)
	if err != nil {
		log.Fatalf("failed to assemble pipeline: %v", err)
	}

	in := bufio.NewReader(os.Stdin)
	criteria := promptFilters(in)

	fmt.Print("\nEnter your travel query: ")
	query, _ := in.ReadString('\n')
	query = strings.TrimSpace(query)
	if query == "" {
		fmt.Println("No query given.")
		return
	}

	ctx := context.Background()
	result, err := pipe.Respond(ctx, query, documents, criteria)
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}
	if result.NoMatches {
		fmt.Println(result.Response)
		return
	}

	for i, match := range result.Matches {
		fmt.Printf("\nMatch %d (score: %.4f):\n%s\n", i+1, match.Score, string(match.Document))
	}
	fmt.Println("\n--- Travel Assistant Response ---")
	fmt.Println(result.Response)
	for _, link := range result.Links {
		state := "ok"
		if !link.Reachable {
			state = "unreachable"
		}
		fmt.Printf("  link %s: %s\n", state, link.URL)
	}

	if compare {
		runComparison(ctx, in, pipe, cfg.Logging.Dir, query, result.Response)
	}
}

// promptFilters asks for the optional pre-ranking filters, one criterion at a
// time. Empty answers leave the criterion inactive.
func promptFilters(in *bufio.Reader) domain.FilterCriteria {
	fmt.Println("\n--- Optional Filters ---")
	var criteria domain.FilterCriteria

	if askBoolean(in, "Filter by country? (y/n): ") {
		for _, c := range strings.Split(askLine(in, "Countries (comma separated): "), ",") {
			if c = strings.TrimSpace(strings.ToLower(c)); c != "" {
				criteria.Countries = append(criteria.Countries, c)
			}
		}
	}
	if askBoolean(in, "Filter by trip duration? (y/n): ") {
		minDays := askInt(in, "Min days: ")
		maxDays := askInt(in, "Max days: ")
		criteria.Duration = &domain.DurationRange{MinDays: minDays, MaxDays: maxDays}
	}
	if askBoolean(in, "Filter by preferred activities? (y/n): ") {
		for _, a := range strings.Split(askLine(in, "Activities (comma separated): "), ",") {
			if a = strings.TrimSpace(strings.ToLower(a)); a != "" {
				criteria.ActivityKeywords = append(criteria.ActivityKeywords, a)
			}
		}
	}
	if askBoolean(in, "Set a max budget? (y/n): ") {
		budget := float64(askInt(in, "Max budget in USD: "))
		criteria.MaxBudget = &budget
	}
	return criteria
}

func runComparison(ctx context.Context, in *bufio.Reader, pipe *pipeline.Pipeline, logDir, query, ragResponse string) {
	fmt.Println("\n--- Baseline (no retrieval) Response ---")
	baseline := pipe.Baseline(ctx, query)
	fmt.Println(baseline)

	preferred := strings.TrimSpace(askLine(in, "\nWhich answer was better? (rag/baseline/tie): "))
	notes := strings.TrimSpace(askLine(in, "Notes (optional): "))
	err := logging.NewFeedbackLogger(logDir).Save(logging.Feedback{
		Timestamp:        time.Now(),
		Query:            query,
		RAGResponse:      ragResponse,
		BaselineResponse: baseline,
		Preferred:        preferred,
		Notes:            notes,
	})
	if err != nil {
		fmt.Printf("failed to save feedback: %v\n", err)
	}
}

func askLine(in *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func askBoolean(in *bufio.Reader, prompt string) bool {
	return strings.ToLower(askLine(in, prompt)) == "y"
}

func askInt(in *bufio.Reader, prompt string) int {
	for {
		n, err := strconv.Atoi(askLine(in, prompt))
		if err == nil {
			return n
		}
		fmt.Println("Please enter a number.")
	}
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

func newFileLogger(dir string) (*zap.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{filepath.Join(dir, "travelrag.log")}
	zcfg.ErrorOutputPaths = zcfg.OutputPaths
	return zcfg.Build()
}
