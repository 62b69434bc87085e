// Command puzzgen generates and solves puzzles from the command line.
//
//	puzzgen [-seed s] [-log file] <engine> [params]
//	puzzgen -solve <engine> <params> <desc>
//
// Generation prints "<params>:<desc>" on stdout, followed by a solution
// line when the engine has a solver. Exits 0 on success, 1 on bad
// arguments or an unsolvable puzzle.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/random"
	"github.com/vancomm/puzzle-server/internal/registry"
)

var log = logrus.New()

func usage() {
	fmt.Fprintln(flag.CommandLine.Output(), "usage:")
	fmt.Fprintln(flag.CommandLine.Output(), "  puzzgen [-seed s] [-log file] <engine> [params]")
	fmt.Fprintln(flag.CommandLine.Output(), "  puzzgen -solve <engine> <params> <desc>")
	fmt.Fprintln(flag.CommandLine.Output(), "engines:")
	for _, eng := range registry.All() {
		fmt.Fprintf(flag.CommandLine.Output(), "  %-10s (default params %s)\n",
			eng.Name(), eng.DefaultParams().Encode(true))
	}
	flag.PrintDefaults()
}

func main() {
	var (
		seed    string
		logFile string
		solve   bool
	)
	flag.StringVar(&seed, "seed", "", "generation seed (random when empty)")
	flag.StringVar(&logFile, "log", "", "append debug logs to a rotating file")
	flag.BoolVar(&solve, "solve", false, "solve a description instead of generating")
	flag.Usage = usage
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if logFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Level:      logrus.DebugLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			log.Fatal("unable to create log file hook: ", err)
		}
		log.SetLevel(logrus.DebugLevel)
		log.AddHook(hook)
	}

	if solve {
		os.Exit(runSolve(flag.Args()))
	}
	os.Exit(runGenerate(seed, flag.Args()))
}

func runGenerate(seed string, args []string) int {
	if len(args) < 1 || len(args) > 2 {
		flag.Usage()
		return 1
	}

	eng, ok := registry.Lookup(args[0])
	if !ok {
		log.Error("unknown engine: ", args[0])
		return 1
	}

	params := eng.DefaultParams()
	if len(args) == 2 {
		var err error
		if params, err = eng.DecodeParams(args[1]); err != nil {
			log.Error("unable to decode params: ", err)
			return 1
		}
	}
	if err := params.Validate(true); err != nil {
		log.Error("invalid params: ", err)
		return 1
	}

	if seed == "" {
		seed = strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	log.WithFields(logrus.Fields{
		"engine": eng.Name(),
		"params": params.Encode(true),
		"seed":   seed,
	}).Debug("generating")

	desc, _, err := eng.Generate(params, random.NewString(seed))
	if err != nil {
		log.Error("unable to generate: ", err)
		return 1
	}

	fmt.Printf("%s:%s\n", params.Encode(false), desc)

	st, err := eng.NewState(params, desc)
	if err != nil {
		log.Error("generated an unplayable description: ", err)
		return 1
	}

	if eng.CanSolve() {
		move, err := eng.Solve(st)
		if err != nil {
			log.Error("unable to solve: ", err)
			return 1
		}
		fmt.Printf("solution:%s\n", move)
	}

	if eng.CanFormatAsText() {
		if text, err := eng.FormatAsText(st); err == nil {
			fmt.Println(text)
		}
	}

	return 0
}

func runSolve(args []string) int {
	if len(args) != 3 {
		flag.Usage()
		return 1
	}

	eng, ok := registry.Lookup(args[0])
	if !ok {
		log.Error("unknown engine: ", args[0])
		return 1
	}
	if !eng.CanSolve() {
		log.Error(puzzle.ErrNoSolver)
		return 1
	}

	params, err := eng.DecodeParams(args[1])
	if err != nil {
		log.Error("unable to decode params: ", err)
		return 1
	}
	if err := params.Validate(false); err != nil {
		log.Error("invalid params: ", err)
		return 1
	}
	if err := eng.ValidateDesc(params, args[2]); err != nil {
		log.Error("invalid description: ", err)
		return 1
	}

	st, err := eng.NewState(params, args[2])
	if err != nil {
		log.Error("unable to build state: ", err)
		return 1
	}

	move, err := eng.Solve(st)
	if err != nil {
		log.Error("unable to solve: ", err)
		return 1
	}

	fmt.Printf("solution:%s\n", move)
	return 0
}
