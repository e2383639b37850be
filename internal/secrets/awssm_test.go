// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package secrets_test

import (
	"context"
	"fmt"

	"github.com/adshares/adcontroller/internal/secrets"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
)

type mockSMClient struct {
	mock.Mock
}

func (m *mockSMClient) CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsmanager.CreateSecretOutput), args.Error(1)
}

func (m *mockSMClient) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsmanager.GetSecretValueOutput), args.Error(1)
}

func (m *mockSMClient) PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsmanager.PutSecretValueOutput), args.Error(1)
}

func secretID(id string) any {
	return mock.MatchedBy(func(params *secretsmanager.GetSecretValueInput) bool {
		return aws.ToString(params.SecretId) == id
	})
}

var _ = Describe("AWS Secrets Manager", func() {
	var (
		client *mockSMClient
		awssm  *secrets.AWSSM
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = &mockSMClient{}
		awssm = &secrets.AWSSM{
			Prefix: "adcontroller",
			API:    client,
		}
	})

	Context("Secrets manager", func() {
		It("should return the secret", func() {
			client.On("GetSecretValue", mock.Anything, secretID("adcontroller/wallet_secret_key"), mock.Anything).Return(
				&secretsmanager.GetSecretValueOutput{
					SecretString: aws.String("mockSecret"),
				}, nil)

			result, err := awssm.GetSecret(ctx, "wallet_secret_key")
			Expect(result).To(Equal("mockSecret"))
			Expect(err).ToNot(HaveOccurred())
		})

		It("should report a missing secret", func() {
			client.On("GetSecretValue", mock.Anything, mock.Anything, mock.Anything).Return(
				nil, &types.ResourceNotFoundException{Message: aws.String("missing")})

			_, err := awssm.GetSecret(ctx, "wallet_secret_key")
			Expect(err).To(MatchError(secrets.ErrNotFound))
		})

		It("should save the secret", func() {
			client.On("PutSecretValue", mock.Anything, mock.Anything, mock.Anything).Return(
				&secretsmanager.PutSecretValueOutput{}, nil)

			err := awssm.SaveSecret(ctx, "wallet_secret_key", "mockSecret")
			Expect(err).ToNot(HaveOccurred())
			client.AssertNotCalled(GinkgoT(), "CreateSecret", mock.Anything, mock.Anything, mock.Anything)
		})

		It("should create the secret on first save", func() {
			client.On("PutSecretValue", mock.Anything, mock.Anything, mock.Anything).Return(
				nil, &types.ResourceNotFoundException{Message: aws.String("missing")})
			client.On("CreateSecret", mock.Anything, mock.MatchedBy(func(params *secretsmanager.CreateSecretInput) bool {
				return aws.ToString(params.Name) == "adcontroller/wallet_secret_key" &&
					aws.ToString(params.SecretString) == "mockSecret"
			}), mock.Anything).Return(&secretsmanager.CreateSecretOutput{}, nil)

			err := awssm.SaveSecret(ctx, "wallet_secret_key", "mockSecret")
			Expect(err).ToNot(HaveOccurred())
			client.AssertExpectations(GinkgoT())
		})

		It("should return an error if update fails", func() {
			client.On("PutSecretValue", mock.Anything, mock.Anything, mock.Anything).Return(
				&secretsmanager.PutSecretValueOutput{}, fmt.Errorf("some error"))

			err := awssm.SaveSecret(ctx, "wallet_secret_key", "mockSecret")
			Expect(err).To(MatchError(ContainSubstring("some error")))
		})

		It("should reject invalid names", func() {
			err := awssm.SaveSecret(ctx, "../escape", "mockSecret")
			Expect(err).To(HaveOccurred())
			client.AssertNotCalled(GinkgoT(), "PutSecretValue", mock.Anything, mock.Anything, mock.Anything)
		})
	})
})
