package timemarket

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

type inspectClient struct {
	client *resty.Client

	baseURL string
	headers map[string]string
}

// NewInspectRemote returns an Inspect backed by a remote handler
// created with NewInspectHandler.
func NewInspectRemote(url string, headers map[string]string) Inspect {
	url = strings.TrimSuffix(url, "/")

	return &inspectClient{
		client:  resty.New(),
		baseURL: url,
		headers: headers,
	}
}

func (i *inspectClient) Keyspaces() ([]string, error) {
	var result []string
	err := i.post(context.Background(), KeyspacesPath, nil, &result)
	return result, err
}

func (i *inspectClient) TokenFields() (map[string]string, error) {
	var result map[string]string
	err := i.post(context.Background(), TokenFieldsPath, nil, &result)
	return result, err
}

func (i *inspectClient) Token(ctx context.Context, id uint64) (*TimeToken, error) {
	var result TimeToken
	err := i.post(ctx, TokenPath, requestToken{ID: id}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (i *inspectClient) SellerTokens(ctx context.Context, seller Identity) ([]uint64, error) {
	var result []uint64
	err := i.post(ctx, SellerTokensPath, requestSellerTokens{Seller: seller}, &result)
	return result, err
}

func (i *inspectClient) Sellers(ctx context.Context) ([]Identity, error) {
	var result []Identity
	err := i.post(ctx, SellersPath, nil, &result)
	return result, err
}

func (i *inspectClient) Stats(ctx context.Context) (Stats, error) {
	var result Stats
	err := i.post(ctx, StatsPath, nil, &result)
	return result, err
}

func (i *inspectClient) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	req := i.client.R().
		SetContext(ctx).
		SetHeaders(i.headers)

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.SetBody(data)
	}

	resp, err := req.Post(i.baseURL + path)
	if err != nil {
		return err
	}

	if resp.StatusCode() == 404 {
		return fmt.Errorf("%w: remote lookup", ErrTokenNotFound)
	}
	if resp.IsError() {
		return fmt.Errorf("request failed with status: %s", resp.Status())
	}

	return json.Unmarshal(resp.Body(), result)
}
