package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/api/v1alpha1"
)

var (
	speciesTranslated bool
	speciesJSONOutput bool
)

var speciesCmd = &cobra.Command{
	Use:   "species [name]",
	Short: "Get a species from the gateway",
	Long:  `Get the normalized record for one species, optionally with its description translated.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSpecies,
}

func init() {
	speciesCmd.Flags().BoolVar(&speciesTranslated, "translated", false, "Request the translated description")
	speciesCmd.Flags().BoolVar(&speciesJSONOutput, "json", false, "Output as JSON")
}

func runSpecies(_ *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Printf("Requesting species '%s' from %s...", args[0], serverURL)

	species, err := fetchSpecies(ctx, http.DefaultClient, serverURL, args[0], speciesTranslated)
	if err != nil {
		return err
	}

	if speciesJSONOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(species)
	}

	printSpecies(os.Stdout, species)
	return nil
}

// fetchSpecies calls the gateway and maps failures back onto error codes
func fetchSpecies(
	ctx context.Context,
	httpClient *http.Client,
	baseURL, name string,
	translated bool,
) (*v1alpha1.SpeciesResponse, error) {
	path := "/pokemon/"
	if translated {
		path = "/pokemon/translated/"
	}
	endpoint := strings.TrimSuffix(baseURL, "/") + path + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid server URL")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "gateway request failed")
	}
	defer func() {
		_ = resp.Body.Close() // nolint:errcheck // nothing to do on close failure
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read gateway response")
	}

	if resp.StatusCode != http.StatusOK {
		var errResp v1alpha1.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Message == "" {
			errResp.Message = resp.Status
		}
		return nil, errors.New(errors.CodeFromHTTPStatus(resp.StatusCode), errResp.Message).
			WithMeta("status", resp.StatusCode)
	}

	var species v1alpha1.SpeciesResponse
	if err := json.Unmarshal(body, &species); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidResponseShape, "failed to decode species")
	}

	return &species, nil
}

func printSpecies(w io.Writer, s *v1alpha1.SpeciesResponse) {
	_, _ = fmt.Fprintf(w, "%s\n", s.Name)
	_, _ = fmt.Fprintf(w, "  Habitat:   %s\n", s.Habitat)
	_, _ = fmt.Fprintf(w, "  Legendary: %t\n", s.IsLegendary)
	_, _ = fmt.Fprintf(w, "\n%s\n", s.Description)
}
