package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/tenuestore/tenue-backend/pkg/config"
)

const (
	scope             = "https://www.googleapis.com/auth/spreadsheets"
	valueInputOption  = "USER_ENTERED"
	insertDataOption  = "INSERT_ROWS"
	appendColumnRange = "A:J"
)

// ErrNotConfigured is returned when any of the service email, private key or
// sheet id is missing.
var ErrNotConfigured = errors.New("sheets credentials not configured")

// Client appends rows to a single spreadsheet tab.
type Client struct {
	values  *sheetsapi.SpreadsheetsValuesService
	sheetID string
	tab     string
}

// NewClient builds a Sheets API client authenticated as the configured
// service account.
func NewClient(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	svc, err := sheetsapi.NewService(ctx, option.WithTokenSource(TokenSource(ctx, cfg)))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	tab := strings.TrimSpace(cfg.Tab)
	if tab == "" {
		tab = "Orders"
	}

	return &Client{
		values:  svc.Spreadsheets.Values,
		sheetID: strings.TrimSpace(cfg.SheetID),
		tab:     tab,
	}, nil
}

// TokenSource returns a two-legged JWT token source for the service account.
func TokenSource(ctx context.Context, cfg config.SheetsConfig) oauth2.TokenSource {
	jwtCfg := &jwt.Config{
		Email:      strings.TrimSpace(cfg.ServiceEmail),
		PrivateKey: []byte(NormalizePrivateKey(cfg.PrivateKey)),
		Scopes:     []string{scope},
		TokenURL:   google.JWTTokenURL,
	}
	return jwtCfg.TokenSource(ctx)
}

// NormalizePrivateKey turns escaped newlines from env files back into real
// line breaks and strips surrounding quotes.
func NormalizePrivateKey(raw string) string {
	key := strings.TrimSpace(raw)
	key = strings.Trim(key, `"`)
	return strings.ReplaceAll(key, `\n`, "\n")
}

// AppendRow appends one row below the existing data of the tab.
func (c *Client) AppendRow(ctx context.Context, row []string) error {
	if c == nil || c.values == nil {
		return ErrNotConfigured
	}
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
	}
	_, err := c.values.
		Append(c.sheetID, c.Range(), &sheetsapi.ValueRange{Values: [][]any{cells}}).
		ValueInputOption(valueInputOption).
		InsertDataOption(insertDataOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

// Range is the A1 notation the rows are appended to.
func (c *Client) Range() string {
	return quoteSheetName(c.tab) + "!" + appendColumnRange
}

func quoteSheetName(name string) string {
	if strings.ContainsAny(name, " '!") {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	return name
}
