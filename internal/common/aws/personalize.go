// internal/common/aws/personalize.go
package aws

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"

	apphttp "restaurant-workers/internal/common/http"
)

const personalizeSigningName = "personalize"

// Recommender returns recommended item ids for a user.
type Recommender interface {
	GetRecommendations(ctx context.Context, campaignARN, userID string, numResults int) ([]string, error)
}

type recommendationsRequest struct {
	CampaignArn string `json:"campaignArn"`
	UserID      string `json:"userId"`
	NumResults  int    `json:"numResults"`
}

type recommendationsResponse struct {
	ItemList []struct {
		ItemID string  `json:"itemId"`
		Score  float64 `json:"score"`
	} `json:"itemList"`
	RecommendationID string `json:"recommendationId"`
}

// PersonalizeClient calls the Personalize runtime GetRecommendations API
// over SigV4-signed HTTPS.
type PersonalizeClient struct {
	http        *apphttp.Client
	credentials awssdk.CredentialsProvider
	signer      *v4.Signer
	region      string
	endpoint    string
}

func NewPersonalizeClient(cfg awssdk.Config, httpClient *apphttp.Client) *PersonalizeClient {
	endpoint := fmt.Sprintf("https://personalize-runtime.%s.amazonaws.com", cfg.Region)
	if cfg.BaseEndpoint != nil {
		endpoint = *cfg.BaseEndpoint
	}
	return &PersonalizeClient{
		http:        httpClient,
		credentials: cfg.Credentials,
		signer:      v4.NewSigner(),
		region:      cfg.Region,
		endpoint:    endpoint,
	}
}

func (c *PersonalizeClient) GetRecommendations(ctx context.Context, campaignARN, userID string, numResults int) ([]string, error) {
	var out recommendationsResponse
	err := c.http.PostJSON(ctx, c.endpoint+"/recommendations", recommendationsRequest{
		CampaignArn: campaignARN,
		UserID:      userID,
		NumResults:  numResults,
	}, &out, c.sign(ctx))
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(out.ItemList))
	for _, item := range out.ItemList {
		ids = append(ids, item.ItemID)
	}
	return ids, nil
}

func (c *PersonalizeClient) sign(ctx context.Context) apphttp.RequestSigner {
	return func(req *http.Request, payload []byte) error {
		if c.credentials == nil {
			return fmt.Errorf("no AWS credentials configured")
		}
		creds, err := c.credentials.Retrieve(ctx)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(payload)
		return c.signer.SignHTTP(ctx, creds, req, hex.EncodeToString(sum[:]), personalizeSigningName, c.region, time.Now())
	}
}
