package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	inkerrors "github.com/mmichie/inkspect/pkg/errors"
)

// requestDetails holds the details for one provider HTTP exchange
type requestDetails struct {
	Method  string
	URL     string
	Body    interface{}
	Headers map[string]string
}

// errorEnvelope is the error shape shared by both providers
type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// exchange performs a single HTTP round trip against a provider.
// No retries: every failure is reported once.
type exchange struct {
	provider string
	client   *http.Client
}

func newExchange(provider string) exchange {
	return exchange{provider: provider, client: http.DefaultClient}
}

func (e exchange) createRequest(ctx context.Context, details requestDetails) (*http.Request, error) {
	var body io.Reader
	if details.Body != nil {
		jsonBody, err := json.Marshal(details.Body)
		if err != nil {
			return nil, fmt.Errorf("error marshaling request: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, details.Method, details.URL, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if details.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", UserAgent)
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}
	return req, nil
}

// do sends the request and decodes a successful reply into target.
// Order: empty body, error envelope, status code, success envelope.
func (e exchange) do(ctx context.Context, op string, details requestDetails, target interface{}) error {
	req, err := e.createRequest(ctx, details)
	if err != nil {
		return inkerrors.Backend(e.provider, op, err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return inkerrors.Backend(e.provider, op, fmt.Errorf("error sending request: %w", err))
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return inkerrors.Backend(e.provider, op, fmt.Errorf("error reading response: %w", err))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return inkerrors.Backend(e.provider, op,
			fmt.Errorf("%w from %s API (status %d)", inkerrors.ErrEmptyResponse, e.provider, resp.StatusCode))
	}
	log.WithFields(log.Fields{"provider": e.provider, "op": op, "status": resp.StatusCode}).
		Debugf("API response: %s", body)

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return inkerrors.Backend(e.provider, op,
			fmt.Errorf("%w: %v", inkerrors.ErrMalformedResponse, err))
	}
	if envelope.Error != nil {
		msg := envelope.Error.Message
		if msg == "" {
			msg = "unknown error"
		}
		return inkerrors.Backend(e.provider, op, fmt.Errorf("%s API error: %s", e.provider, msg))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return inkerrors.Backend(e.provider, op,
			fmt.Errorf("API request failed with status code %d: %s", resp.StatusCode, string(body)))
	}

	if err := json.Unmarshal(body, target); err != nil {
		return inkerrors.Backend(e.provider, op,
			fmt.Errorf("%w: %v", inkerrors.ErrMalformedResponse, err))
	}
	return nil
}
