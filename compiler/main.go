package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"tiny_compiler/assembler"
	"tiny_compiler/compiler/internal"
	"tiny_compiler/util"
	"tiny_compiler/vm"

	"github.com/tebeka/atexit"
)

var (
	configPath  = flag.String("config", "", "the yaml config file")
	src         = flag.String("src", "", "the source code to compile")
	file        = flag.String("file", "", "the path of the source file to compile")
	sample      = flag.Int("sample", 0, "compile the demo program with this number (1-4)")
	symbols     = flag.String("symbols", "", "comma separated variables defined before the program, e.g. x,limit")
	showTokens  = flag.Bool("tokens", false, "print the tokens")
	showAST     = flag.Bool("ast", false, "print the ast")
	link        = flag.Bool("link", false, "link the code and print it with addresses")
	run         = flag.String("run", "", "link and run the code with the initial memory, e.g. x=1,y=2")
	listing     = flag.String("listing", "", "link the text listing in this file instead of compiling, -run runs it")
	steps       = flag.Int("steps", vm.DefaultStepLimit, "the most instructions -run executes")
	showHistory = flag.Bool("history", false, "print the compilation history")
	verbose     = flag.Bool("v", false, "log every phase")
)

func main() {
	flag.Parse()
	atexit.Exit(compile())
}

// compile returns the exit code.
func compile() int {
	ctx := context.Background()
	config, err := internal.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		return 2
	}
	logger, err := newLogger(config.Log, *verbose)
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		return 2
	}
	slog.SetDefault(logger)

	memory, err := parseMemory(*run)
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		return 2
	}
	if *listing != "" {
		return linkListing(*listing, memory)
	}
	source, err := readSource()
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		return 2
	}
	history, err := openHistory(ctx, config.History)
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		return 2
	}
	atexit.Register(func() {
		if err := history.Close(); err != nil {
			slog.Warn("compiler: failed to close history", "err", err)
		}
	})

	session := internal.NewSession(internal.WithLogger(logger), internal.WithHistory(history),
		internal.WithSymbols(config.Symbols...))
	session.Define(splitList(*symbols)...)
	for name := range memory {
		session.Define(name)
	}

	result, err := session.Compile(ctx, source)
	if *showHistory {
		defer printHistory(ctx, session)
	}
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		return 1
	}
	if *showTokens || config.Output.Tokens {
		printTokens(result.Tokens)
	}
	if *showAST || config.Output.AST {
		fmt.Println(result.AST.String())
	}
	if !*link && *run == "" {
		printLines("Code", result.Lines())
	} else {
		program, err := assembler.New().Assemble(result.Instructions)
		if err != nil {
			fmt.Printf("Error: %+v\n", err)
			return 1
		}
		printLines("Linked code", program.Lines())
		if *run != "" && runProgram(program, memory) != nil {
			return 1
		}
	}
	if config.Output.Symbols {
		printSymbols(session.Symbols())
	}
	return 0
}

// linkListing links a listing written in the text form of the instructions, a CMP there
// needs its operator as in `CMP temp_1 >` to be run.
func linkListing(path string, memory map[string]int) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		return 2
	}
	defer f.Close()
	program, err := assembler.New().AssembleText(f)
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		return 1
	}
	printLines("Linked code", program.Lines())
	if *run != "" && runProgram(program, memory) != nil {
		return 1
	}
	return 0
}

func runProgram(program *assembler.Program, memory map[string]int) error {
	machine := vm.NewMachine(program, memory)
	machine.SetStepLimit(*steps)
	err := machine.Run()
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		return err
	}
	printMemory(machine.Memory(), machine.Acc(), machine.Steps())
	return nil
}

func newLogger(config internal.LogConfig, verbose bool) (*slog.Logger, error) {
	level, err := config.SlogLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}
	if config.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, options)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, options)), nil
}

func openHistory(ctx context.Context, config internal.HistoryConfig) (internal.HistoryStore, error) {
	if config.Driver == "sqlite" {
		return internal.NewSQLiteHistory(ctx, config.DSN)
	}
	return internal.NewMemoryHistory(), nil
}

// readSource takes the source from -src, -file or -sample, in this order, and falls back to stdin.
func readSource() (string, error) {
	switch {
	case *src != "":
		return *src, nil
	case *file != "":
		content, err := os.ReadFile(*file)
		return string(content), err
	case *sample != 0:
		program, err := internal.Sample(*sample)
		if err != nil {
			return "", err
		}
		fmt.Printf("Sample %d: %s\n", *sample, program.Title)
		return program.Source, nil
	}
	content, err := io.ReadAll(os.Stdin)
	return string(content), err
}

// parseMemory parses name=value pairs separated by commas.
func parseMemory(s string) (map[string]int, error) {
	memory := map[string]int{}
	for _, pair := range splitList(s) {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || !util.IsIdentifier(name) {
			return nil, fmt.Errorf("bad memory binding %q, want name=value", pair)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("bad memory binding %q: %w", pair, err)
		}
		memory[name] = n
	}
	return memory, nil
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
