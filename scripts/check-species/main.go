// Command check-species reports which species lack English flavor text.
//
//	go run ./scripts/check-species mewtwo ditto kleinstein
//	cat names.txt | go run ./scripts/check-species
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

type result struct {
	name string
	err  error
}

func main() {
	concurrency := flag.Int("concurrency", 4, "Parallel species lookups")
	timeout := flag.Duration("timeout", pokeapi.DefaultHTTPTimeout, "Timeout per lookup")
	flag.Parse()

	baseURL := os.Getenv("POKEAPI_BASE_URL")
	if baseURL == "" {
		baseURL = pokeapi.DefaultBaseURL
	}

	client, err := pokeapi.New(&pokeapi.Config{BaseURL: baseURL, HTTPTimeout: *timeout})
	if err != nil {
		log.Fatal("Failed to create PokeAPI client:", err)
	}

	names := flag.Args()
	if len(names) == 0 {
		names, err = readNames(os.Stdin)
		if err != nil {
			log.Fatal("Failed to read species names:", err)
		}
	}

	fmt.Println("Checking", len(names), "species against", baseURL)

	results := checkAll(context.Background(), client, names, *concurrency)
	if failed := report(os.Stdout, results); failed > 0 {
		os.Exit(1)
	}
}

func readNames(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" && !strings.HasPrefix(name, "#") {
			names = append(names, name)
		}
	}
	return names, scanner.Err()
}

func checkAll(ctx context.Context, client pokeapi.Client, names []string, concurrency int) []result {
	p := pool.NewWithResults[result]().WithContext(ctx).WithMaxGoroutines(max(concurrency, 1))
	for _, name := range names {
		p.Go(func(ctx context.Context) (result, error) {
			_, err := client.GetSpecies(ctx, name)
			return result{name: name, err: err}, nil
		})
	}

	// tasks never fail; lookup errors travel in the result
	results, _ := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].name < results[j].name })
	return results
}

// report prints one line per species and returns how many were not servable
func report(w io.Writer, results []result) int {
	failed := 0
	for _, r := range results {
		switch {
		case r.err == nil:
			_, _ = fmt.Fprintf(w, "✓ %s\n", r.name)
		case errors.IsMissingLocalizedText(r.err):
			failed++
			meta := errors.GetMeta(r.err)
			_, _ = fmt.Fprintf(w, "✗ %s: no English text (%v entries, languages %v)\n",
				r.name, meta["entries"], meta["languages"])
		default:
			failed++
			_, _ = fmt.Fprintf(w, "✗ %s: %s\n", r.name, errors.GetCode(r.err))
		}
	}

	_, _ = fmt.Fprintf(w, "\nChecked %d species, %d not servable (%s)\n",
		len(results), failed, time.Now().Format(time.RFC3339))
	return failed
}
