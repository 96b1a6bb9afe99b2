// Command shogi is a hot-seat terminal client: every seat plays from the
// same keyboard against a local engine.
package main

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/icco/goshogi"
	"github.com/icco/gutil/logging"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var log = logging.Must(logging.NewLogger(goshogi.Service))

type options struct {
	Rule      int            `short:"r" long:"rule" description:"Start straight into this rule id"`
	RulesFile flags.Filename `long:"rules" description:"YAML rule book merged over the builtin rules"`
	Players   []string       `short:"p" long:"player" description:"Player name, once per seat in turn order"`
	Shuffle   bool           `short:"s" long:"shuffle" description:"Seat the players in random order"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	rules := goshogi.BuiltinRules()
	if opts.RulesFile != "" {
		extra, err := goshogi.LoadRuleFile(string(opts.RulesFile))
		if err != nil {
			log.Fatalw("could not load rules", zap.Error(err))
		}
		rules = rules.Merge(extra)
	}

	m := initialModel(rules)
	m.players = opts.Players
	if opts.Shuffle {
		m.shuffle = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if opts.Rule != 0 {
		if err := m.newGame(opts.Rule); err != nil {
			log.Fatalw("could not start game", "rule", opts.Rule, zap.Error(err))
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalw("tui exited", zap.Error(err))
	}
}
