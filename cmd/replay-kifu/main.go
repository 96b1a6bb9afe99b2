// Command replay-kifu replays a kifu file and prints the final position.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/icco/goshogi"
	"github.com/icco/gutil/logging"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

var log = logging.Must(logging.NewLogger(goshogi.Service))

type options struct {
	Filename  flags.Filename `short:"f" long:"filename" description:"Kifu file to replay" required:"true"`
	RulesFile flags.Filename `short:"r" long:"rules" description:"YAML rule book merged over the builtin rules"`
	JSON      bool           `short:"j" long:"json" description:"Print the game serialization instead of kifu text"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	if err := run(opts, os.Stdout); err != nil {
		log.Fatalw("replay failed", "file", opts.Filename, zap.Error(err))
	}
}

func run(opts options, w io.Writer) error {
	rules := goshogi.BuiltinRules()
	if opts.RulesFile != "" {
		extra, err := goshogi.LoadRuleFile(string(opts.RulesFile))
		if err != nil {
			return err
		}
		rules = rules.Merge(extra)
	}

	f, err := os.Open(string(opts.Filename))
	if err != nil {
		return err
	}
	defer f.Close()

	rec, err := goshogi.ParseKifu(f)
	if err != nil {
		return err
	}
	g, err := rec.Replay(rules)
	if err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g.Serialize())
	}

	fmt.Fprint(w, g.Diagram())
	if msg := g.Message(); msg != "" {
		fmt.Fprintln(w, msg)
	}
	fmt.Fprintln(w)
	_, err = fmt.Fprint(w, g.KifuText())
	return err
}
