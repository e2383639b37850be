// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package secrets_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/adshares/adcontroller/internal/secrets"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("File Secrets Manager", func() {
	var (
		dir   string
		store *secrets.FileStore
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = filepath.Join(GinkgoT().TempDir(), "secrets")
		store = secrets.NewFileStore(dir)
	})

	Context("Secrets manager", func() {
		It("should return the saved secret", func() {
			Expect(store.SaveSecret(ctx, "wallet_secret_key", "mockSecret")).To(Succeed())

			result, err := store.GetSecret(ctx, "wallet_secret_key")
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(Equal("mockSecret"))
		})

		It("should overwrite the secret", func() {
			Expect(store.SaveSecret(ctx, "wallet_secret_key", "first")).To(Succeed())
			Expect(store.SaveSecret(ctx, "wallet_secret_key", "second")).To(Succeed())

			result, err := store.GetSecret(ctx, "wallet_secret_key")
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(Equal("second"))
		})

		It("should keep the secret private", func() {
			Expect(store.SaveSecret(ctx, "wallet_secret_key", "mockSecret")).To(Succeed())

			info, err := os.Stat(filepath.Join(dir, "wallet_secret_key"))
			Expect(err).ToNot(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))
		})

		It("should report a missing secret", func() {
			_, err := store.GetSecret(ctx, "wallet_secret_key")
			Expect(err).To(MatchError(secrets.ErrNotFound))
		})

		It("should reject invalid names", func() {
			Expect(store.SaveSecret(ctx, "../wallet", "mockSecret")).ToNot(Succeed())
			_, err := store.GetSecret(ctx, "")
			Expect(err).To(HaveOccurred())
		})
	})
})
