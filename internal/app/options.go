package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/abhisek/smartstudy/internal/capture"
	"github.com/abhisek/smartstudy/internal/config"
	"github.com/abhisek/smartstudy/internal/gateway"
	"github.com/abhisek/smartstudy/internal/llm"
	"github.com/abhisek/smartstudy/internal/logging"
	"github.com/abhisek/smartstudy/internal/store"
	"github.com/abhisek/smartstudy/internal/study"
	"github.com/abhisek/smartstudy/internal/ui/theme"
)

// ErrAIUnavailable is returned when no LLM provider is configured.
var ErrAIUnavailable = errors.New("AI features unavailable: no LLM API key configured")

// Options is the application context shared by the TUI and the CLI
// commands. Init opens the local resources; EnableAI adds the model
// backed services.
type Options struct {
	Config  *config.Config
	Logger  *zap.Logger
	Store   *store.Store
	Version string

	Provider   llm.Provider
	Gateway    *gateway.Gateway
	Study      *study.Service
	Recognizer capture.Recognizer

	closers []func() error
}

// Init opens the logger and the store at dbPath and applies the stored
// theme.
func Init(ctx context.Context, cfg *config.Config, dbPath string) (*Options, error) {
	o := &Options{Config: cfg, Recognizer: capture.Unavailable{}}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	o.Logger = logger
	o.closers = append(o.closers, closeLog)

	st, err := store.Open(dbPath)
	if err != nil {
		o.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	o.Store = st
	o.closers = append(o.closers, st.Close)

	if t, err := st.GetTheme(ctx); err == nil && t == store.ThemeDark {
		theme.Apply(theme.Dark)
	} else {
		theme.Apply(theme.Light)
	}

	// Quiz play and history work without a model; Process and Scan
	// report ErrAIUnavailable until EnableAI succeeds.
	o.Study = study.NewService(offlineGateway{}, st, o.studyConfig(), study.WithLogger(logger))

	o.Logger.Info("store opened", zap.String("db", dbPath))
	return o, nil
}

// EnableAI builds the provider chain, gateway, study service and speech
// recognizer. It returns ErrAIUnavailable when no API key is configured;
// the local features keep working.
func (o *Options) EnableAI(ctx context.Context) error {
	cfg := o.Config.LLM
	if !cfg.HasKey() {
		o.Logger.Warn("no LLM API key configured")
		return ErrAIUnavailable
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	provider, err := llm.NewProvider(ctx, cfg, o.Store.EventRepo(), o.Logger)
	if err != nil {
		o.Logger.Error("llm provider init failed", zap.Error(err))
		return err
	}

	o.Provider = provider
	o.Gateway = gateway.New(provider, o.Logger)
	o.Study = study.NewService(o.Gateway, o.Store, o.studyConfig(), study.WithLogger(o.Logger))

	speech := cfg.OpenAI
	if speech.APIKey == "" {
		speech.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	o.Recognizer = capture.NewRecognizer(speech)

	o.Logger.Info("ai enabled",
		zap.String("provider", cfg.Provider),
		zap.String("model", provider.ModelID()),
		zap.Bool("speech", speech.APIKey != ""))
	return nil
}

// AIEnabled reports whether EnableAI succeeded.
func (o *Options) AIEnabled() bool {
	return o.Gateway != nil
}

func (o *Options) studyConfig() study.Config {
	return study.Config{StrictResponses: o.Config.Study.StrictResponses}
}

// offlineGateway stands in for the AI gateway before EnableAI.
type offlineGateway struct{}

func (offlineGateway) ExtractText(context.Context, llm.Image) (string, error) {
	return "", &gateway.ExtractionError{Err: ErrAIUnavailable}
}

func (offlineGateway) ClassifyAndSolve(context.Context, string, bool) (*gateway.ClassifiedResult, error) {
	return nil, &gateway.ProcessingError{Err: ErrAIUnavailable}
}

// Close releases resources in reverse order of acquisition.
func (o *Options) Close() error {
	var errs []error
	for i := len(o.closers) - 1; i >= 0; i-- {
		if err := o.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	o.closers = nil
	return errors.Join(errs...)
}
