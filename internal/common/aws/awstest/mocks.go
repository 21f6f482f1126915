// Package awstest holds func-field fakes of the AWS client interfaces for tests.
package awstest

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

var errNotStubbed = errors.New("call not stubbed")

// MockDynamoDB implements aws.DynamoDBAPI. Unset funcs fail the call.
type MockDynamoDB struct {
	GetItemFunc        func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItemFunc        func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItemFunc     func(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	QueryFunc          func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	ScanFunc           func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItemFunc func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

func (m *MockDynamoDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if m.GetItemFunc == nil {
		return nil, errNotStubbed
	}
	return m.GetItemFunc(ctx, params, optFns...)
}

func (m *MockDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.PutItemFunc == nil {
		return nil, errNotStubbed
	}
	return m.PutItemFunc(ctx, params, optFns...)
}

func (m *MockDynamoDB) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if m.UpdateItemFunc == nil {
		return nil, errNotStubbed
	}
	return m.UpdateItemFunc(ctx, params, optFns...)
}

func (m *MockDynamoDB) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if m.QueryFunc == nil {
		return nil, errNotStubbed
	}
	return m.QueryFunc(ctx, params, optFns...)
}

func (m *MockDynamoDB) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if m.ScanFunc == nil {
		return nil, errNotStubbed
	}
	return m.ScanFunc(ctx, params, optFns...)
}

func (m *MockDynamoDB) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	if m.BatchWriteItemFunc == nil {
		return nil, errNotStubbed
	}
	return m.BatchWriteItemFunc(ctx, params, optFns...)
}

// MockSNS implements aws.SNSService.
type MockSNS struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput) (*sns.PublishOutput, error)
}

func (m *MockSNS) Publish(ctx context.Context, params *sns.PublishInput) (*sns.PublishOutput, error) {
	if m.PublishFunc == nil {
		return nil, errNotStubbed
	}
	return m.PublishFunc(ctx, params)
}

// MockPresigner implements aws.UploadPresigner.
type MockPresigner struct {
	PresignPutFunc func(ctx context.Context, bucket, key, contentType string, expires time.Duration) (string, error)
}

func (m *MockPresigner) PresignPut(ctx context.Context, bucket, key, contentType string, expires time.Duration) (string, error) {
	if m.PresignPutFunc == nil {
		return "", errNotStubbed
	}
	return m.PresignPutFunc(ctx, bucket, key, contentType, expires)
}

// MockRecommender implements aws.Recommender.
type MockRecommender struct {
	GetRecommendationsFunc func(ctx context.Context, campaignARN, userID string, numResults int) ([]string, error)
}

func (m *MockRecommender) GetRecommendations(ctx context.Context, campaignARN, userID string, numResults int) ([]string, error) {
	if m.GetRecommendationsFunc == nil {
		return nil, errNotStubbed
	}
	return m.GetRecommendationsFunc(ctx, campaignARN, userID, numResults)
}
