package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/wanderstone-dev/wanderstone/pkg/cli/config"
	httpctrl "github.com/wanderstone-dev/wanderstone/pkg/controller/http"
	"github.com/wanderstone-dev/wanderstone/pkg/i18n"
	"github.com/wanderstone-dev/wanderstone/pkg/service/narrative"
	"github.com/wanderstone-dev/wanderstone/pkg/service/staticmap"
	"github.com/wanderstone-dev/wanderstone/pkg/service/worker"
	"github.com/wanderstone-dev/wanderstone/pkg/usecase"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var threshold float64
	var sessionTTL time.Duration
	var sweepInterval time.Duration
	var synonymsFile string
	var publicMap bool
	var repoCfg config.Repository
	var extractorCfg config.Extractor
	var slackCfg config.Slack
	var geocodingCfg config.Geocoding
	var geminiCfg config.Gemini
	var storageCfg config.Storage
	var webMapCfg config.WebMap

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("WANDERSTONE_ADDR"),
			Destination: &addr,
		},
		&cli.FloatFlag{
			Name:        "similarity-threshold",
			Usage:       "Cosine similarity at or above which a photo matches a registered stone",
			Value:       usecase.DefaultSimilarityThreshold,
			Sources:     cli.EnvVars("WANDERSTONE_SIMILARITY_THRESHOLD"),
			Destination: &threshold,
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Idle time after which an unfinished intake session is discarded",
			Value:       30 * time.Minute,
			Sources:     cli.EnvVars("WANDERSTONE_SESSION_TTL"),
			Destination: &sessionTTL,
		},
		&cli.DurationFlag{
			Name:        "sweep-interval",
			Usage:       "How often idle intake sessions are swept",
			Value:       5 * time.Minute,
			Sources:     cli.EnvVars("WANDERSTONE_SWEEP_INTERVAL"),
			Destination: &sweepInterval,
		},
		&cli.StringFlag{
			Name:        "synonyms-file",
			Usage:       "TOML file with per-locale skip/cancel synonym words (embedded defaults when unset)",
			Sources:     cli.EnvVars("WANDERSTONE_SYNONYMS_FILE"),
			Destination: &synonymsFile,
		},
		&cli.BoolFlag{
			Name:        "public-map",
			Usage:       "Serve the unauthenticated stone listing endpoint",
			Sources:     cli.EnvVars("WANDERSTONE_PUBLIC_MAP"),
			Destination: &publicMap,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, extractorCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, geocodingCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, webMapCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			extractorSvc, err := extractorCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize extractor service")
			}

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize slack service")
			}

			images, err := storageCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize image store")
			}

			ucOpts := []usecase.Option{
				usecase.WithSimilarityThreshold(threshold),
				usecase.WithMapRenderer(staticmap.New()),
				usecase.WithImageStore(images),
			}

			if geocoder := geocodingCfg.Configure(); geocoder != nil {
				ucOpts = append(ucOpts, usecase.WithGeocoder(geocoder))
				logging.Default().Info("Geocoding enabled")
			} else {
				logging.Default().Info("Geocoding disabled, postal codes will not be resolved")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize gemini client")
			}
			if llmClient != nil {
				narrativeSvc, err := narrative.New(llmClient)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize narrative service")
				}
				ucOpts = append(ucOpts, usecase.WithNarrative(narrativeSvc))
				logging.Default().Info("Journey narrative enabled")
			} else {
				logging.Default().Info("Gemini not configured, journey narratives disabled")
			}

			tokens, err := webMapCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize web token service")
			}
			if tokens != nil {
				ucOpts = append(ucOpts, usecase.WithWebMap(tokens, webMapCfg.BaseURL()))
				logging.Default().Info("Journey map links enabled", "webmap", webMapCfg)
			}

			uc := usecase.New(repo, extractorSvc, ucOpts...)

			if synonymsFile != "" {
				synonyms, err := i18n.LoadSynonyms(synonymsFile)
				if err != nil {
					return goerr.Wrap(err, "failed to load synonyms file", goerr.V("path", synonymsFile))
				}
				uc.Intake.SetSynonyms(synonyms)
				logging.Default().Info("Loaded synonym sets", "path", synonymsFile)
			}

			// Sweep abandoned intake sessions and stale delete confirmations
			sweeper := worker.NewSessionSweeper(uc.Intake, sweepInterval, sessionTTL)
			sweeper.Start(ctx)
			defer sweeper.Stop()

			httpOpts := []httpctrl.Options{
				httpctrl.WithSlackWebhook(
					httpctrl.NewSlackEventHandler(uc.Chat, slackSvc),
					httpctrl.NewSlackInteractionHandler(uc.Chat, slackSvc),
					slackCfg.SigningSecret(),
				),
			}
			if tokens != nil {
				var mapOpts []httpctrl.MapOption
				if publicMap {
					mapOpts = append(mapOpts, httpctrl.WithPublicListing())
				}
				httpOpts = append(httpOpts, httpctrl.WithMapHandler(httpctrl.NewMapHandler(repo, tokens, mapOpts...)))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
