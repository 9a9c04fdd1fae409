package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"docugen/internal/clients"
	"docugen/internal/config"
	"docugen/internal/generate"
	"docugen/internal/instantiate"
	"docugen/internal/logger"
	"docugen/internal/orchestrate"
	"docugen/internal/profile"
	"docugen/internal/repository"
	"docugen/internal/sequence"
	"docugen/internal/storage"
	"docugen/internal/templates"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "docugen",
	Short: "docugen - AI-assisted invoice generator",
	Long: `docugen drafts professional Markdown invoices from natural-language
prompts, keeps an append-only version history per document, and renders
the result through themeable layouts for review, export and printing.

Business profile, client roster, invoice history and templates are
stored locally; an OpenAI API key is only needed for the generate
command.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("docugen executed")

		fmt.Println("Welcome to docugen!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

// app bundles the wired services every subcommand needs.
type app struct {
	cfg       *config.Config
	store     storage.Store
	seq       *sequence.Allocator
	invoices  *repository.InvoiceRepository
	clients   *clients.Store
	templates *templates.Store
	profiles  *profile.Store
}

// newApp loads configuration and connects the storage backend.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var store storage.Store
	switch cfg.StorageBackend {
	case "redis":
		store, err = storage.NewRedisStore(cfg.RedisURL)
	default:
		store, err = storage.NewFileStore(cfg.DataDir)
	}
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		store:     store,
		seq:       sequence.NewAllocator(store),
		invoices:  repository.NewInvoiceRepository(store),
		clients:   clients.NewStore(store),
		templates: templates.NewStore(store),
		profiles:  profile.NewStore(store),
	}, nil
}

// orchestrator builds the generation pipeline; it fails fast when no API
// key is configured so read-only commands never pay for it.
func (a *app) orchestrator() (*orchestrate.Orchestrator, error) {
	gateway, err := generate.NewGateway(a.cfg.OpenAIAPIKey, a.cfg.OpenAIModel, a.cfg.OpenAITemperature)
	if err != nil {
		return nil, err
	}
	return orchestrate.New(a.seq, a.invoices, a.clients, a.profiles, gateway), nil
}

func (a *app) instantiator() *instantiate.Instantiator {
	return instantiate.New(a.seq, a.invoices)
}

// confirm asks for an explicit yes before a destructive action. The
// assumeYes flag (from --yes) skips the prompt for scripted use.
func confirm(prompt string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
