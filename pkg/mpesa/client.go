package mpesa

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to an M-Pesa transaction-status gateway. It only confirms
// that a payment reference exists; it never initiates payments.
type Client struct {
	BaseURL    string
	AppKey     string
	AppSecret  string
	HTTPClient *http.Client
}

type verifyRequest struct {
	TransactionCode string `json:"transaction_code"`
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		TransactionCode string `json:"transaction_code"`
		Status          string `json:"status"`
	} `json:"data"`
}

func NewClient(baseURL, appKey, appSecret string) *Client {
	return &Client{
		BaseURL:   baseURL,
		AppKey:    appKey,
		AppSecret: appSecret,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// VerifyTransaction checks a transaction code with the gateway and returns
// an error when the gateway does not confirm it.
func (c *Client) VerifyTransaction(code string) error {
	requestData := verifyRequest{TransactionCode: code}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return fmt.Errorf("failed to marshal request data: %w", err)
	}

	url := fmt.Sprintf("%s/transaction/verify", c.BaseURL)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	auth := base64.StdEncoding.EncodeToString([]byte(c.AppKey + ":" + c.AppSecret))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var response verifyResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if !response.Success {
		return fmt.Errorf("transaction %s not confirmed: %s", code, response.Message)
	}
	return nil
}
