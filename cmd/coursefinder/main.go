// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/poiesic/coursefinder"
	"github.com/poiesic/coursefinder/chat"
	"github.com/poiesic/coursefinder/config"
	"github.com/poiesic/coursefinder/core"
	"github.com/poiesic/coursefinder/ingestion"
	"github.com/poiesic/coursefinder/recommend"
	"github.com/poiesic/coursefinder/search"
	"github.com/poiesic/coursefinder/server"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "coursefinder",
		Usage: "Search and recommend courses from a JSON catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the course catalog (overrides config)",
			},
			&cli.StringFlag{
				Name:    "matcher",
				Aliases: []string{"m"},
				Usage:   "Search strategy: lexical or embedding (overrides config)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Rank courses against a free-text query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results (defaults to search.top_k)",
					},
				},
			},
			{
				Name:      "show",
				Usage:     "Print one course by id",
				ArgsUsage: "<id>",
				Action:    showCommand,
			},
			{
				Name:   "filter",
				Usage:  "List courses matching category, difficulty or skills",
				Action: filterCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Usage: "Exact category, ignoring case"},
					&cli.StringFlag{Name: "difficulty", Usage: "Beginner, Intermediate or Advanced"},
					&cli.StringSliceFlag{Name: "skill", Usage: "Skill to match; repeat for any of several"},
				},
			},
			{
				Name:   "recommend",
				Usage:  "Recommend courses for a learner profile",
				Action: recommendCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "interests", Usage: "What the learner wants to study"},
					&cli.StringFlag{Name: "background", Usage: "The learner's experience"},
					&cli.StringFlag{Name: "skill-level", Usage: "Beginner, Intermediate or Advanced"},
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results (defaults to search.top_k)",
					},
				},
			},
			{
				Name:   "chat",
				Usage:  "Talk to the course advisor (requires ai.enabled)",
				Action: chatCommand,
			},
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (overrides server.addr)",
					},
				},
			},
		},
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if v := c.String("data"); v != "" {
		cfg.Data.Path = v
	}
	if v := c.String("matcher"); v != "" {
		cfg.Search.Matcher = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// The flag wins over logging.level from the file.
	if !c.IsSet("log-level") && cfg.Logging.Level != "" {
		if err := configureLogger(c.App.ErrWriter, cfg.Logging.Level); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func openFinder(c *cli.Context) (*coursefinder.Finder, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	opts := []coursefinder.Option{
		coursefinder.WithMatcherKind(cfg.MatcherKind()),
		coursefinder.WithChatTopK(cfg.Search.TopK),
	}
	if cfg.AI.Enabled {
		encoderOpts := append(cfg.EncoderOptions(), ingestion.WithProgress(c.App.ErrWriter))
		opts = append(opts,
			coursefinder.WithAIConfig(cfg.ProviderConfig()),
			coursefinder.WithEncoderOptions(encoderOpts...),
		)
	}

	finder, err := coursefinder.New(c.Context, cfg.Data.Path, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return finder, cfg, nil
}

func topK(c *cli.Context, cfg *config.Config) int {
	if c.IsSet("top-k") {
		return c.Int("top-k")
	}
	return cfg.Search.TopK
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a search query is required")
	}

	finder, cfg, err := openFinder(c)
	if err != nil {
		return err
	}
	defer finder.Close()

	results := finder.Search(c.Context, query, topK(c, cfg))
	printResults(c.App.Writer, results)
	return nil
}

func showCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("a course id is required")
	}

	finder, _, err := openFinder(c)
	if err != nil {
		return err
	}
	defer finder.Close()

	course, ok := finder.GetByID(c.Context, id)
	if !ok {
		return fmt.Errorf("course %q not found", id)
	}
	fmt.Fprintln(c.App.Writer, chat.FormatCourse(course))
	return nil
}

func filterCommand(c *cli.Context) error {
	finder, _, err := openFinder(c)
	if err != nil {
		return err
	}
	defer finder.Close()

	courses := finder.Filter(c.Context, search.Criteria{
		Category:   c.String("category"),
		Difficulty: c.String("difficulty"),
		Skills:     c.StringSlice("skill"),
	})
	fmt.Fprintf(c.App.Writer, "Found %d courses\n", len(courses))
	for i := range courses {
		fmt.Fprintf(c.App.Writer, "%s: %s [%s, %s]\n",
			courses[i].ID, courses[i].Title, courses[i].Category, courses[i].Difficulty)
	}
	return nil
}

func recommendCommand(c *cli.Context) error {
	finder, cfg, err := openFinder(c)
	if err != nil {
		return err
	}
	defer finder.Close()

	results := finder.Recommend(c.Context, recommend.Request{
		Interests:  c.String("interests"),
		Background: c.String("background"),
		SkillLevel: c.String("skill-level"),
		TopK:       topK(c, cfg),
	})
	printResults(c.App.Writer, results)
	return nil
}

func chatCommand(c *cli.Context) error {
	finder, _, err := openFinder(c)
	if err != nil {
		return err
	}
	defer finder.Close()

	if !finder.HasAssistant() {
		return fmt.Errorf("chat: %w (set ai.enabled or COURSEFINDER_CHAT_HOST)", chat.ErrAssistantUnavailable)
	}
	return converse(c.Context, finder, c.App.Reader, c.App.Writer)
}

type chatter interface {
	Chat(ctx context.Context, message string, profile chat.Profile) (chat.Reply, error)
}

// converse runs a read-reply loop until EOF or "quit". The learner profile
// is re-derived from the whole conversation on every turn.
func converse(ctx context.Context, assistant chatter, in io.Reader, out io.Writer) error {
	var history []chat.Message
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "Tell me what you want to learn. Type quit to leave.")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "quit" || message == "exit" {
			return nil
		}

		history = append(history, chat.Message{Role: chat.RoleUser, Content: message})
		reply, err := assistant.Chat(ctx, message, chat.ExtractProfile(history))
		if err != nil {
			return err
		}
		history = append(history, chat.Message{Role: chat.RoleAssistant, Content: reply.Text})
		fmt.Fprintln(out, reply.Text)
	}
}

func serveCommand(c *cli.Context) error {
	finder, cfg, err := openFinder(c)
	if err != nil {
		return err
	}
	defer finder.Close()

	addr := cfg.Server.Addr
	if v := c.String("addr"); v != "" {
		addr = v
	}

	srv, err := server.New(finder,
		server.WithAllowedOrigins(cfg.Server.AllowedOrigins...),
		server.WithDefaultTopK(cfg.Search.TopK),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx, addr); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func printResults(w io.Writer, results []core.ScoredCourse) {
	fmt.Fprintf(w, "Found %d courses\n", len(results))
	for _, hit := range results {
		fmt.Fprintf(w, "%d. %s: %s [%s] (%0.3f)\n",
			hit.Rank, hit.ID, hit.Title, hit.Difficulty, hit.SimilarityScore)
	}
}

func setupLogger(c *cli.Context) error {
	return configureLogger(c.App.ErrWriter, c.String("log-level"))
}

func configureLogger(w io.Writer, levelStr string) error {
	levelStr = strings.ToLower(levelStr)

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
