package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/google/uuid"
)

// Metadata is the per-user blob held by the identity provider. Only the
// favorites list is meaningful to this service; the provider owns the rest.
type Metadata struct {
	Favorites []uuid.UUID `json:"favorites"`
}

// IdentityClient wraps the identity provider's user API. The provider owns
// authentication and metadata storage; this client only reads and patches.
type IdentityClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewIdentityClient(baseURL, apiKey string) IdentityClient {
	return IdentityClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type userResponse struct {
	PublicMetadata Metadata `json:"public_metadata"`
}

func (c IdentityClient) GetUserMetadata(ctx context.Context, userID string) (Metadata, error) {
	endpoint := fmt.Sprintf("%s/v1/users/%s", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to build metadata request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to get user metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, fmt.Errorf("unexpected status code: %v", resp.StatusCode)
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return Metadata{}, fmt.Errorf("failed to decode user metadata: %w", err)
	}

	return user.PublicMetadata, nil
}

type metadataPatchRequest struct {
	PublicMetadata *Metadata `json:"public_metadata,omitempty"`
}

// UpdateUserMetadata overwrites the user's public metadata. There is no
// optimistic lock; concurrent writers race (last write wins).
func (c IdentityClient) UpdateUserMetadata(ctx context.Context, userID string, metadata Metadata) error {
	endpoint := fmt.Sprintf("%s/v1/users/%s/metadata", c.baseURL, url.PathEscape(userID))

	body, err := json.Marshal(metadataPatchRequest{
		PublicMetadata: pointer.To(metadata),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build metadata request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to update user metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %v", resp.StatusCode)
	}

	return nil
}
