// Command dictrec reads a dictation command record, proposes composite
// commands that would have saved the most spoken words, lets the user
// refine the proposal interactively, and writes the accepted set to a
// recommendations file.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/google/uuid"

	"dictrec/pkg/candidate"
	"dictrec/pkg/config"
	"dictrec/pkg/output"
	"dictrec/pkg/record"
	"dictrec/pkg/redundancy"
	"dictrec/pkg/refine"
	"dictrec/pkg/runconfig"
	"dictrec/pkg/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics at this address")
	logLevel := flag.String("log-level", "", "log level (overrides DICTREC_LOG_LEVEL/default)")
	flag.Parse()

	stdin := bufio.NewReader(os.Stdin)
	cfg := runconfig.FromEnv(runconfig.Defaults)
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	cfg.RecordFile = promptForFile(flag.Arg(0), stdin)
	cfg.MaxChainSize = promptOrUseInt(flag.Arg(1), stdin, cfg.MaxChainSize,
		"Input the maximum number of consecutive commands to consider as a single potential command.\n"+
			"Making this bigger can allow finding longer patterns but it takes longer. Press enter with no input to take default of 20: ")
	cfg.NumRecommendations = promptOrUseInt(flag.Arg(2), stdin, cfg.NumRecommendations,
		"Input the maximum number of command recommendations to output. Press enter with no input to take default of 0: ")

	if err := runconfig.Validate(cfg); err != nil {
		fmt.Println(err)
		return 1
	}

	runID := uuid.New()
	log := telemetry.NewLogger(os.Stderr, cfg.LogLevel).With().Str("run_id", runID.String()).Logger()
	metrics := telemetry.New()

	if cfg.MetricsAddr != "" {
		go func() {
			if err := telemetry.ServeHTTP(cfg.MetricsAddr, metrics.Registry); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	f, err := os.Open(cfg.RecordFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to open record file")
		return 1
	}
	defer f.Close()

	log.Info().Msg("reading record")
	rec, err := record.Parse(f)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse record")
		return 1
	}

	log.Info().Msg("generating candidates")
	generator := candidate.NewGenerator(cfg.MaxChainSize, log)
	candidates := generator.Generate(rec)

	filter := redundancy.NewFilter(log)
	candidates = filter.Apply(candidates, cfg.Workers)

	configStore, err := config.New(".", log)
	if err != nil {
		log.Error().Err(err).Msg("failed to set up configuration directory")
		return 1
	}
	candidates = dropPersistentlyRejected(candidates, configStore)

	var accepted []*candidate.Candidate
	if cfg.NumRecommendations == 0 {
		accepted = candidates
	} else {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		driver := refine.New(os.Stdin, os.Stdout, configStore, metrics, log)
		accepted = driver.Run(ctx, candidates, refine.Params{
			K:            cfg.NumRecommendations,
			TrialsBudget: len(candidates),
			Workers:      cfg.Workers,
			BaseSeed:     cfg.Seed,
		})
	}

	fileName := output.FileName(time.Now(), runID)
	if err := output.Write("data", fileName, accepted); err != nil {
		log.Error().Err(err).Msg("failed to write recommendations")
		return 1
	}
	log.Info().Str("file", fileName).Int("recommendations", len(accepted)).Msg("run complete")
	return 0
}

// dropPersistentlyRejected removes every candidate containing a
// persistently-rejected action or matching a persistently-rejected command
// sequence, loaded once at startup.
func dropPersistentlyRejected(cands []*candidate.Candidate, store *config.Store) []*candidate.Candidate {
	rejectedActions := store.RejectedActions()
	rejectedCommands := store.RejectedCommands()

	out := cands[:0]
	for _, c := range cands {
		if rejectedActions.ContainsAny(c.Actions) {
			continue
		}
		if rejectedCommands.Contains(c.Actions) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func promptForFile(positional string, stdin *bufio.Reader) string {
	if positional != "" {
		if _, err := os.Stat(positional); err == nil {
			return positional
		}
		fmt.Println("Could not open the record file.")
	}
	for {
		fmt.Print("Input the filepath to the command record: ")
		line := trimNewline(readLine(stdin))
		if _, err := os.Stat(line); err == nil {
			return line
		}
		fmt.Println("Please input a valid path.")
	}
}

func promptOrUseInt(positional string, stdin *bufio.Reader, def int, prompt string) int {
	if positional != "" {
		if n, err := strconv.Atoi(positional); err == nil {
			return n
		}
		fmt.Println("Could not parse the value.")
	}
	for {
		fmt.Print(prompt)
		line := trimNewline(readLine(stdin))
		if line == "" {
			return def
		}
		if n, err := strconv.Atoi(line); err == nil {
			return n
		}
		fmt.Println("Please enter a non-negative integer.")
	}
}

func readLine(stdin *bufio.Reader) string {
	line, _ := stdin.ReadString('\n')
	return line
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
