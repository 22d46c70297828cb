package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

const httpTimeout = 5 * time.Second

type feedOptions struct {
	host     string
	login    string
	password string
	secure   bool
}

func newFeedCommand() *cobra.Command {
	var opts feedOptions
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Print live events from a running server",
		Long: `Connects to the events websocket and prints every event as a JSON line.
Without --login the feed is anonymous and carries only public events.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runFeed(ctx, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.host, "host", "localhost:8080", "API server host")
	cmd.Flags().StringVar(&opts.login, "login", "", "Username or email to sign in as")
	cmd.Flags().StringVar(&opts.password, "password", "", "Password for --login")
	cmd.Flags().BoolVar(&opts.secure, "tls", false, "Use https and wss")
	return cmd
}

func runFeed(ctx context.Context, opts feedOptions, out io.Writer) error {
	httpScheme, wsScheme := "http", "ws"
	if opts.secure {
		httpScheme, wsScheme = "https", "wss"
	}
	base := url.URL{Scheme: httpScheme, Host: opts.host}
	client := &http.Client{Timeout: httpTimeout}

	query := url.Values{}
	if opts.login != "" {
		token, err := login(ctx, client, base, opts.login, opts.password)
		if err != nil {
			return err
		}
		ticket, err := issueTicket(ctx, client, base, token)
		if err != nil {
			return err
		}
		query.Set("ticket", ticket)
	}

	wsURL := url.URL{Scheme: wsScheme, Host: opts.host, Path: "/api/ws", RawQuery: query.Encode()}
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL.String(), nil)
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	if err != nil {
		return fmt.Errorf("connect %s: %w", wsURL.Redacted(), err)
	}
	defer func() { _ = conn.Close() }()

	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}
		if _, err := fmt.Fprintln(out, string(message)); err != nil {
			return err
		}
	}
}

func login(ctx context.Context, client *http.Client, base url.URL, loginName, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"login": loginName, "password": password})
	if err != nil {
		return "", err
	}
	var result struct {
		Token string `json:"token"`
	}
	if err := postJSON(ctx, client, base.JoinPath("/api/auth/login"), "", body, &result); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return result.Token, nil
}

func issueTicket(ctx context.Context, client *http.Client, base url.URL, token string) (string, error) {
	var result struct {
		Ticket string `json:"ticket"`
	}
	if err := postJSON(ctx, client, base.JoinPath("/api/ws/ticket"), token, nil, &result); err != nil {
		return "", fmt.Errorf("websocket ticket: %w", err)
	}
	return result.Ticket, nil
}

func postJSON(ctx context.Context, client *http.Client, target *url.URL, token string, body []byte, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
