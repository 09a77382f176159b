// Package sheets fetches the ingredient table from a Google Sheets
// spreadsheet using installed-app OAuth credentials.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"ingredient-finder/internal/config"
)

// Source loads the ingredient table from the configured spreadsheet. Any
// failure (missing credentials, expired token, transport, API) surfaces as
// an error so the caller can fall back to the local cache.
type Source struct {
	cfg *config.Config
}

// NewSource creates a Source for the configured spreadsheet.
func NewSource(cfg *config.Config) *Source {
	return &Source{cfg: cfg}
}

// LoadTable fetches the configured cell range and returns its rows as
// strings. Trailing empty cells are omitted by the Sheets API, so row
// widths may vary.
func (s *Source) LoadTable(ctx context.Context) ([][]string, error) {
	client, err := s.oauthClient(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := gsheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	spreadsheetID, err := s.cfg.ResolveSpreadsheetID()
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, s.cfg.SheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch range %s: %w", s.cfg.SheetRange, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// oauthClient builds an HTTP client from the credentials file and the cached
// token, running the interactive authorization flow when no token exists.
// Tokens are refreshed automatically by the oauth2 token source; a freshly
// exchanged token is written back to the token file for the next run.
func (s *Source) oauthClient(ctx context.Context) (*http.Client, error) {
	data, err := os.ReadFile(s.cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(data, gsheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	token, err := tokenFromFile(s.cfg.TokenFile)
	if err != nil {
		token, err = s.authorize(ctx, oauthCfg)
		if err != nil {
			return nil, err
		}
		if err := saveToken(s.cfg.TokenFile, token); err != nil {
			return nil, err
		}
	}

	return oauthCfg.Client(ctx, token), nil
}

// authorize runs the interactive installed-app flow: the user opens the
// printed URL in a browser and pastes the authorization code back.
func (s *Source) authorize(ctx context.Context, oauthCfg *oauth2.Config) (*oauth2.Token, error) {
	authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}

	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode token file %s: %w", path, err)
	}
	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", path, err)
	}
	return nil
}
