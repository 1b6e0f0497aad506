package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// errResponse matches the error document returned by the node.
type errResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func get(ctx context.Context, url string, result any) error {
	return do(ctx, http.MethodGet, url, nil, result)
}

func post(ctx context.Context, url string, body any, result any) error {
	return do(ctx, http.MethodPost, url, body, result)
}

func do(ctx context.Context, method string, url string, body any, result any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var er errResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
			return fmt.Errorf("node returned %s", resp.Status)
		}
		if len(er.Fields) > 0 {
			return fmt.Errorf("node returned %s: %s %v", resp.Status, er.Error, er.Fields)
		}
		return fmt.Errorf("node returned %s: %s", resp.Status, er.Error)
	}

	if result == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(result)
}
