package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const sheetsBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// SheetsClient replaces whole-sheet contents in a fixed spreadsheet.
type SheetsClient struct {
	oauth         *OAuthClient
	spreadsheetID string
	http          *http.Client
}

func NewSheetsClient(oauth *OAuthClient, spreadsheetID string) *SheetsClient {
	return &SheetsClient{
		oauth:         oauth,
		spreadsheetID: spreadsheetID,
		http:          &http.Client{Timeout: 10 * time.Second},
	}
}

// ReplaceSheet clears the sheet, writes the header row, then the data rows.
func (c *SheetsClient) ReplaceSheet(ctx context.Context, refreshToken, sheetTitle string, headers []string, rows [][]any) error {
	accessToken, err := c.oauth.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		return err
	}

	clearURL := fmt.Sprintf("%s/%s/values/%s:clear",
		sheetsBaseURL, c.spreadsheetID, url.PathEscape(sheetTitle+"!A:Z"))
	if err := c.do(ctx, http.MethodPost, clearURL, accessToken, struct{}{}); err != nil {
		return fmt.Errorf("failed to clear sheet %s: %w", sheetTitle, err)
	}

	headerRow := make([]any, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	values := append([][]any{headerRow}, rows...)

	updateURL := fmt.Sprintf("%s/%s/values/%s?valueInputOption=RAW",
		sheetsBaseURL, c.spreadsheetID, url.PathEscape(sheetTitle+"!A1"))
	payload := valueRange{Values: values}
	if err := c.do(ctx, http.MethodPut, updateURL, accessToken, payload); err != nil {
		return fmt.Errorf("failed to write sheet %s: %w", sheetTitle, err)
	}
	return nil
}

func (c *SheetsClient) do(ctx context.Context, method, endpoint, accessToken string, payload any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
