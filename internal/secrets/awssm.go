// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

type SecretsManagerAPI interface {
	CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error)
}

// AWSSM stores each secret as <Prefix>/<name> in AWS Secrets Manager.
type AWSSM struct {
	Prefix string
	API    SecretsManagerAPI
}

func NewAWSSM(ctx context.Context, prefix string, region string) (*AWSSM, error) {
	// if region is empty then set to us-west-2
	if region == "" {
		region = "us-west-2"
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("not able to configure aws session: %w", err)
	}

	return &AWSSM{
		Prefix: prefix,
		API:    secretsmanager.NewFromConfig(cfg),
	}, nil
}

func (f *AWSSM) secretID(name string) string {
	if f.Prefix == "" {
		return name
	}
	return strings.TrimSuffix(f.Prefix, "/") + "/" + name
}

// SaveSecret saves the secret to AWS Secrets Manager, creating it on first use
func (f *AWSSM) SaveSecret(ctx context.Context, name string, secret string) error {
	if err := validateName(name); err != nil {
		return err
	}
	input := &secretsmanager.PutSecretValueInput{
		SecretId:     aws.String(f.secretID(name)),
		SecretString: aws.String(secret),
	}
	_, err := f.API.PutSecretValue(ctx, input)
	if err == nil {
		return nil
	}

	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("put secret %s: %w", name, err)
	}
	_, err = f.API.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:         aws.String(f.secretID(name)),
		SecretString: aws.String(secret),
	})
	if err != nil {
		return fmt.Errorf("create secret %s: %w", name, err)
	}
	return nil
}

// GetSecret retrieves the secret from AWS Secrets Manager
func (f *AWSSM) GetSecret(ctx context.Context, name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(f.secretID(name)),
	}
	result, err := f.API.GetSecretValue(ctx, input)
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get secret %s: %w", name, err)
	}
	if result.SecretString == nil {
		return "", ErrNotFound
	}
	return *result.SecretString, nil
}

var _ Store = (*AWSSM)(nil)
