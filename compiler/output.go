package main

import (
	"context"
	"fmt"
	"sort"
	"tiny_compiler/compiler/internal"

	"github.com/jedib0t/go-pretty/v6/table"
)

func printTokens(tokens []*internal.Token) {
	t := table.NewWriter()
	t.SetTitle("Tokens")
	t.AppendHeader(table.Row{"#", "Type", "Content", "Offset"})
	for i, token := range tokens {
		t.AppendRow(table.Row{i, token.Type(), token.Content(), token.Offset()})
	}
	fmt.Println(t.Render())
}

func printLines(title string, lines []string) {
	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(table.Row{"#", "Instruction"})
	for i, line := range lines {
		t.AppendRow(table.Row{i, line})
	}
	fmt.Println(t.Render())
}

func printSymbols(symbols internal.SymbolTable) {
	t := table.NewWriter()
	t.SetTitle("Symbols")
	t.AppendHeader(table.Row{"Name", "Type"})
	for _, name := range symbols.Names() {
		t.AppendRow(table.Row{name, symbols[name]})
	}
	fmt.Println(t.Render())
}

func printMemory(memory map[string]int, acc int, steps int) {
	names := make([]string, 0, len(memory))
	for name := range memory {
		names = append(names, name)
	}
	sort.Strings(names)
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Memory after %d steps, acc = %d", steps, acc))
	t.AppendHeader(table.Row{"Name", "Value"})
	for _, name := range names {
		t.AppendRow(table.Row{name, memory[name]})
	}
	fmt.Println(t.Render())
}

func printHistory(ctx context.Context, session *internal.Session) {
	entries, err := session.History(ctx)
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		return
	}
	t := table.NewWriter()
	t.SetTitle("History")
	t.AppendHeader(table.Row{"ID", "Time", "Status", "Instructions", "Error"})
	for _, entry := range entries {
		t.AppendRow(table.Row{entry.ID, entry.Time.Format("2006-01-02 15:04:05"), entry.Status,
			entry.Instructions, entry.Error})
	}
	fmt.Println(t.Render())
}
