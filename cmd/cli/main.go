package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ledgerbook-cli",
		Short: "Ledgerbook CLI tool",
		Long:  `A command line interface for interacting with the Ledgerbook API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Ledgerbook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountsCmd())
	rootCmd.AddCommand(recordCmd())
	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(entriesCmd())
	rootCmd.AddCommand(reportCmd())

	return rootCmd
}

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	var id, name, accountType string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, _ := json.Marshal(map[string]string{
				"id":   id,
				"name": name,
				"type": accountType,
			})
			return doRequest(http.MethodPost, "/api/v1/accounts/", bytes.NewReader(body))
		},
	}
	createCmd.Flags().StringVar(&id, "id", "", "Account ID (generated when empty)")
	createCmd.Flags().StringVar(&name, "name", "", "Account name")
	createCmd.Flags().StringVar(&accountType, "type", "", "Account type: ASSET, LIABILITY, EQUITY, REVENUE or EXPENSE")
	createCmd.MarkFlagRequired("name")
	createCmd.MarkFlagRequired("type")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodGet, "/api/v1/accounts/", nil)
		},
	}

	cmd.AddCommand(createCmd)
	cmd.AddCommand(listCmd)

	return cmd
}

func recordCmd() *cobra.Command {
	var transactionID, description string
	var debits, credits []string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a balanced journal entry",
		Long: `Record a balanced journal entry. Legs are given as ACCOUNT:AMOUNT pairs:

  ledgerbook-cli record --debit ACC001:1000 --credit ACC003:1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			legs := make([]map[string]string, 0, len(debits)+len(credits))
			for _, d := range debits {
				leg, err := parseLeg(d, "DEBIT")
				if err != nil {
					return err
				}
				legs = append(legs, leg)
			}
			for _, c := range credits {
				leg, err := parseLeg(c, "CREDIT")
				if err != nil {
					return err
				}
				legs = append(legs, leg)
			}

			body, _ := json.Marshal(map[string]any{
				"transaction_id": transactionID,
				"description":    description,
				"legs":           legs,
			})
			return doRequest(http.MethodPost, "/api/v1/journal/entries/", bytes.NewReader(body))
		},
	}

	cmd.Flags().StringVar(&transactionID, "transaction", "", "Transaction ID (generated when empty)")
	cmd.Flags().StringVar(&description, "description", "", "Entry description")
	cmd.Flags().StringArrayVar(&debits, "debit", nil, "Debit leg as ACCOUNT:AMOUNT (repeatable)")
	cmd.Flags().StringArrayVar(&credits, "credit", nil, "Credit leg as ACCOUNT:AMOUNT (repeatable)")

	return cmd
}

func balanceCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "balance ACCOUNT",
		Short: "Show an account's balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/accounts/%s/balance", url.PathEscape(args[0]))
			if asOf != "" {
				path += "?as_of=" + url.QueryEscape(asOf)
			}
			return doRequest(http.MethodGet, path, nil)
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Balance as of this RFC 3339 time")

	return cmd
}

func entriesCmd() *cobra.Command {
	var accountID, transactionID, from, to string

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/journal/entries/"
			params := url.Values{}
			switch {
			case accountID != "":
				params.Set("account_id", accountID)
			case transactionID != "":
				params.Set("transaction_id", transactionID)
			case from != "" && to != "":
				params.Set("from", from)
				params.Set("to", to)
			}
			if len(params) > 0 {
				path += "?" + params.Encode()
			}
			return doRequest(http.MethodGet, path, nil)
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Filter by account ID")
	cmd.Flags().StringVar(&transactionID, "transaction", "", "Filter by transaction ID")
	cmd.Flags().StringVar(&from, "from", "", "Range start, RFC 3339 (with --to)")
	cmd.Flags().StringVar(&to, "to", "", "Range end, RFC 3339 (with --from)")

	return cmd
}

func reportCmd() *cobra.Command {
	var asOf, format string
	var showEmpty bool

	cmd := &cobra.Command{
		Use:   "report KIND",
		Short: "Render a report",
		Long:  `Render a report. KIND is one of trial-balance, income-statement, cash-flow or balance-sheet.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/reports/%s", url.PathEscape(args[0]))
			params := url.Values{}
			if asOf != "" {
				params.Set("as_of", asOf)
			}
			if showEmpty {
				params.Set("show_empty", "true")
			}
			if format != "" {
				params.Set("format", format)
			}
			if len(params) > 0 {
				path += "?" + params.Encode()
			}
			return doRequest(http.MethodGet, path, nil)
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Report as of this RFC 3339 time")
	cmd.Flags().BoolVar(&showEmpty, "show-empty", false, "Include zero-balance accounts")
	cmd.Flags().StringVar(&format, "format", "", "Response format: text (default) or json")

	return cmd
}

// doRequest performs the request and prints the response body, pretty
// printed when it is JSON.
func doRequest(method, path string, body io.Reader) error {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var parsed any
		if err := json.Unmarshal(respBody, &parsed); err == nil {
			printJSON(parsed)
			return nil
		}
	}

	fmt.Print(string(respBody))

	return nil
}

// parseLeg parses an ACCOUNT:AMOUNT pair into a request leg.
func parseLeg(spec, kind string) (map[string]string, error) {
	account, amount, ok := strings.Cut(spec, ":")
	if !ok || account == "" || amount == "" {
		return nil, fmt.Errorf("invalid leg %q, expected ACCOUNT:AMOUNT", spec)
	}

	return map[string]string{
		"account_id": account,
		"kind":       kind,
		"amount":     amount,
	}, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(out))
}
