package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"resume-ai-api/internal/application/draft"
	"resume-ai-api/internal/application/usage"
	"resume-ai-api/internal/config"
	"resume-ai-api/internal/infrastructure/llm"
	einoobs "resume-ai-api/internal/observability/eino"
	"resume-ai-api/internal/wire"
	"resume-ai-api/pkg/logger"
)

type generateFlags struct {
	question  string
	draftFile string
	limit     int
	company   string
	position  string
	model     string
	noNotes   bool
	asJSON    bool
}

var genFlags generateFlags

// generateCmd 运行一次改写
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Rewrite a draft to fit a character limit",
	Long: `Rewrite a draft so that its length lands between 90% and 100% of the limit.

Examples:
  # Rewrite a draft file with the default model
  draftctl generate --question "Why us?" --draft draft.txt --limit 800 --company Acme --position SRE

  # Read the draft from stdin and print JSON
  cat draft.txt | draftctl generate --question "Why us?" --draft - --limit 800 --company Acme --position SRE --json

  # Try the pipeline without calling a provider
  draftctl generate --mock --question q --draft draft.txt --limit 500 --company c --position p`,
	RunE: runGenerate,
}

// modelsCmd 列出模型目录
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List configured models",
	RunE:  runModels,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genFlags.question, "question", "", "essay question")
	f.StringVar(&genFlags.draftFile, "draft", "-", "draft file, - for stdin")
	f.IntVar(&genFlags.limit, "limit", 0, "character limit")
	f.StringVar(&genFlags.company, "company", "", "target organization")
	f.StringVar(&genFlags.position, "position", "", "target role")
	f.StringVar(&genFlags.model, "model", "gpt-4", "model id")
	f.BoolVar(&genFlags.noNotes, "no-notes", false, "omit explanatory notes")
	f.BoolVar(&genFlags.asJSON, "json", false, "print the full result as JSON")
	_ = generateCmd.MarkFlagRequired("question")
	_ = generateCmd.MarkFlagRequired("limit")
	_ = generateCmd.MarkFlagRequired("company")
	_ = generateCmd.MarkFlagRequired("position")
}

func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	cfg, err := config.LoadFrom(configDir)
	if err != nil {
		return nil, err
	}
	if useMock {
		cfg.UseMockDriver()
	}
	logger.InitWithWriter(os.Stderr, cfg.Observability.Logging.Level, "text")
	return cfg, nil
}

func readDraft(path string, stdin io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read draft: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", errors.New("draft is empty")
	}
	return string(b), nil
}

func buildRequest(f generateFlags, draftText string) (draft.GenerationRequest, error) {
	if f.limit <= 0 {
		return draft.GenerationRequest{}, errors.New("--limit must be positive")
	}
	return draft.GenerationRequest{
		Question:            f.question,
		Draft:               draftText,
		TargetLength:        f.limit,
		Organization:        f.company,
		Role:                f.position,
		Model:               f.model,
		IncludeExplanations: !f.noNotes,
	}, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	draftText, err := readDraft(genFlags.draftFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	req, err := buildRequest(genFlags, draftText)
	if err != nil {
		return err
	}

	einoobs.Init(usage.NewRecorder())
	gen, err := wire.InitializeGenerator(cfg)
	if err != nil {
		return err
	}

	res := gen.Generate(context.Background(), req)
	if err := printResult(cmd.OutOrStdout(), res, genFlags.asJSON); err != nil {
		return err
	}
	if res.Failed {
		return fmt.Errorf("%s: %s", res.ErrorMessage, res.ErrorCause)
	}
	return nil
}

func printResult(w io.Writer, res *draft.GenerationResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"text":     res.Text,
			"notes":    res.Notes,
			"outcome":  res.Outcome,
			"attempts": res.Attempts,
			"length":   res.Length,
			"minimum":  res.Band.Minimum,
			"maximum":  res.Band.Maximum,
			"error":    res.ErrorMessage,
		})
	}
	if res.Failed {
		_, err := fmt.Fprintln(w, res.ErrorMessage)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", res.Text); err != nil {
		return err
	}
	for _, n := range res.Notes {
		if _, err := fmt.Fprintf(w, "- %s\n", n); err != nil {
			return err
		}
	}
	return nil
}

func runModels(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	for _, m := range llm.NewCatalog(cfg).Models() {
		state := "available"
		if !m.Available {
			state = "unavailable"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-14s %s\n", m.ID, m.Name, state)
	}
	return nil
}
