package main

import (
	"os"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sheikhrachel/go-trench/utils"
	"github.com/sheikhrachel/go-trench/view"
)

var log = logrus.New()

// bindFlags attaches every command line flag to config
func bindFlags(p *flaggy.Parser, config *utils.Config, configFile *string) {
	p.Description = "Runs an infinite-plane image enhancement automaton"
	p.String(configFile, "c", "config", "Path to a JSON or YAML config file")
	p.String(&config.Input, "i", "input", "Path to the puzzle input")
	p.Int(&config.Steps, "s", "steps", "Number of generations to run")
	p.Int(&config.Padding, "p", "padding", "Cells drawn around the active region")
	p.Bool(&config.ShowBoard, "b", "board", "Print the final board")
	p.Bool(&config.RowNumbers, "r", "row-numbers", "Prefix board rows with their y coordinate")
	p.Bool(&config.Color, "", "color", "Colour the board")
	p.Bool(&config.Verify, "v", "verify", "Cross-check every step against the dense reference")
	p.Bool(&config.UseMemoryPool, "", "pool", "Reuse dense grid buffers while verifying")
	p.Bool(&config.Interactive, "n", "interactive", "Step through generations in a terminal UI")
	p.String(&config.LogLevel, "l", "log-level", "Log level (debug, info, warn, error)")
}

// parseArgs loads the optional config file and lets any flag given on the
// command line override it, including boolean flags set to false
func parseArgs(args []string) (utils.Config, error) {
	var (
		configFile string
		scratch    = utils.DefaultConfig()
	)

	// first pass only finds the config file
	scan := flaggy.NewParser("trench")
	scan.ShowHelpOnUnexpected = false
	bindFlags(scan, &scratch, &configFile)
	if err := scan.ParseArgs(args); err != nil {
		return scratch, errors.Wrap(err, "[parseArgs] failed to parse flags")
	}

	config := utils.DefaultConfig()
	if configFile != "" {
		loaded, err := utils.LoadConfig(configFile)
		if err != nil {
			log.WithError(err).Warn("Ignoring config file")
		} else {
			config = loaded
		}
	}

	// second pass writes only the flags that were given onto the loaded values
	p := flaggy.NewParser("trench")
	p.ShowHelpOnUnexpected = true
	bindFlags(p, &config, &configFile)
	if err := p.ParseArgs(args); err != nil {
		return config, errors.Wrap(err, "[parseArgs] failed to parse flags")
	}
	return config, nil
}

func main() {
	config, err := parseArgs(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("Invalid command line")
	}

	if level, err := logrus.ParseLevel(config.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("log_level", config.LogLevel).Warn("Unknown log level, keeping info")
	}

	if err := config.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	s, err := loadSession(config, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load input")
	}
	log.WithFields(logrus.Fields{
		"input":         config.Input,
		"steps":         config.Steps,
		"verify":        config.Verify,
		"active":        s.Store().Len(),
		"transitioning": s.engine.Table().IsTransitioning(),
	}).Info("Loaded input")

	if config.Interactive {
		ui, err := view.NewConsoleUI(s, config.Steps)
		if err != nil {
			log.WithError(err).Fatal("Failed to start terminal UI")
		}
		if err = ui.Start(); err != nil {
			log.WithError(err).Fatal("Terminal UI stopped")
		}
		return
	}

	if err = s.Run(config.Steps); err != nil {
		log.WithError(err).Fatal("Run failed")
	}
	if err = displayResult(os.Stdout, s, config.ShowBoard); err != nil {
		log.WithError(err).Fatal("Failed to display result")
	}
}
