package main

import (
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"podium/internal/debate"
	"podium/internal/engine"
	"podium/internal/export"
	"podium/internal/knowledge"
	"podium/internal/transcript"
)

var (
	runTopic            string
	runParticipants     string
	runFormat           string
	runTimePerTurn      int
	runMaxTurns         int
	runInterruptions    bool
	runFactCheck        bool
	runNoFactCheck      bool
	runModeratorControl string
	runNoRAG            bool
	runTrace            bool
	runOutput           string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a debate",
	Long: `Run one debate to completion and print the transcript.

Examples:
  podium run --topic "Climate Change" --participants biden,trump
  podium run --topic Economy --participants biden,trump,sanders --format panel
  podium run --topic Healthcare --no-fact-check --output debate.json`,
	RunE: runDebate,
}

func init() {
	runCmd.Flags().StringVar(&runTopic, "topic", "Climate Change", "Debate topic")
	runCmd.Flags().StringVar(&runParticipants, "participants", "biden,trump", "Comma-separated participant identities")
	runCmd.Flags().StringVar(&runFormat, "format", "", "Debate format: town_hall, head_to_head, panel")
	runCmd.Flags().IntVar(&runTimePerTurn, "time-per-turn", 0, "Seconds allotted per turn")
	runCmd.Flags().IntVar(&runMaxTurns, "max-turns", 0, "Turn cap for the debate")
	runCmd.Flags().BoolVar(&runInterruptions, "allow-interruptions", true, "Allow debaters to interrupt each other")
	runCmd.Flags().BoolVar(&runFactCheck, "fact-check", true, "Fact-check statements")
	runCmd.Flags().BoolVar(&runNoFactCheck, "no-fact-check", false, "Disable fact-checking")
	runCmd.Flags().StringVar(&runModeratorControl, "moderator-control", "", "Moderator control level: strict, moderate, minimal")
	runCmd.Flags().BoolVar(&runNoRAG, "no-rag", false, "Disable knowledge retrieval")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "Verbose orchestration diagnostics")
	runCmd.Flags().StringVar(&runOutput, "output", "", "Write the record to a file (.json or .md)")
}

func runDebate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := zap.NewNop()
	if runTrace {
		dev, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("build trace logger: %w", err)
		}
		defer dev.Sync()
		logger = dev
	}

	in := buildInput()
	retriever := buildRetriever(in.UseRAG)

	orch := engine.New(nil, retriever, engine.Options{
		MaxTurns:           pickInt(runMaxTurns, appConfig.Defaults.MaxTurns),
		TopicInterval:      appConfig.Defaults.TopicInterval,
		InterruptionChance: appConfig.Defaults.InterruptionChance,
		Logger:             logger,
	})

	rec, err := orch.Run(ctx, in)
	if err != nil {
		return fmt.Errorf("run debate: %w", err)
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Debate: %s", rec.Topic)))
	fmt.Println()
	fmt.Println(transcript.Render(rec))

	archive(rec, string(in.Format.Name))

	if runOutput != "" {
		if err := export.WriteFile(rec, runOutput); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Println(dimStyle.Render("Wrote " + runOutput))
	}
	return nil
}

func buildInput() debate.Input {
	formatName := debate.FormatName(pickString(runFormat, appConfig.Defaults.Format))
	if !formatName.Valid() {
		fmt.Fprintln(os.Stderr, warnStyle.Render(
			fmt.Sprintf("Unknown format %q, using head_to_head", formatName)))
		formatName = debate.HeadToHead
	}

	control := debate.ModeratorControl(pickString(runModeratorControl, appConfig.Defaults.ModeratorControl))
	switch control {
	case debate.ControlStrict, debate.ControlModerate, debate.ControlMinimal:
	default:
		fmt.Fprintln(os.Stderr, warnStyle.Render(
			fmt.Sprintf("Unknown moderator control %q, using moderate", control)))
		control = debate.ControlModerate
	}

	return debate.Input{
		Topic:        strings.TrimSpace(runTopic),
		Participants: sanitizeParticipants(runParticipants),
		Format: debate.Format{
			Name:                 formatName,
			TimePerTurn:          pickInt(runTimePerTurn, appConfig.Defaults.TimePerTurn),
			InterruptionsEnabled: runInterruptions,
			FactCheckEnabled:     runFactCheck && !runNoFactCheck,
			ModeratorControl:     control,
		},
		UseRAG: !runNoRAG && appConfig.Paths.KnowledgeDir != "",
		Trace:  runTrace,
	}
}

func buildRetriever(useRAG bool) knowledge.Retriever {
	if !useRAG {
		return knowledge.Nop{}
	}
	return knowledge.NewDir(appConfig.Paths.KnowledgeDir)
}

var identityPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// sanitizeParticipants parses the --participants list, keeping the valid
// prefix: parsing stops at the first malformed token. An unusable list
// falls back to the default pairing rather than failing the run.
func sanitizeParticipants(raw string) []string {
	var out []string
	for _, token := range strings.Split(raw, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if !identityPattern.MatchString(token) {
			fmt.Fprintln(os.Stderr, warnStyle.Render(
				fmt.Sprintf("Ignoring participants from invalid token %q onward", token)))
			break
		}
		out = append(out, token)
	}
	if len(out) < 2 {
		fmt.Fprintln(os.Stderr, warnStyle.Render("Not enough valid participants, using biden,trump"))
		return []string{"biden", "trump"}
	}
	return out
}

// archive saves the record; archival failures are warnings, not errors.
func archive(rec *debate.Record, format string) {
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, warnStyle.Render("Archive unavailable: "+err.Error()))
		return
	}
	defer store.Close()

	if err := store.SaveRecord(rec, format); err != nil {
		fmt.Fprintln(os.Stderr, warnStyle.Render("Failed to archive debate: "+err.Error()))
		return
	}
	fmt.Println(dimStyle.Render("Archived as " + rec.ID))
}

func pickInt(flag, fallback int) int {
	if flag > 0 {
		return flag
	}
	return fallback
}

func pickString(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
