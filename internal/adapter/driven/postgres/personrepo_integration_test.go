//go:build integration

package postgres_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/ericfisherdev/personauth/internal/adapter/driven/postgres"
	"github.com/ericfisherdev/personauth/internal/domain/model"
	"github.com/ericfisherdev/personauth/internal/domain/port/driven"
)

var _ = Describe("PersonRepo", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		truncatePersons(ctx, env.pool)
	})

	Describe("Save", func() {
		It("assigns identities on insert", func() {
			first, err := env.persons.Save(ctx, model.Person{Login: "Alice123", Password: "h1"})
			Expect(err).NotTo(HaveOccurred())
			second, err := env.persons.Save(ctx, model.Person{Login: "Bob456", Password: "h2"})
			Expect(err).NotTo(HaveOccurred())

			Expect(first.ID).To(BeNumerically(">", 0))
			Expect(second.ID).To(BeNumerically(">", first.ID))
		})

		It("replaces an existing row", func() {
			saved, err := env.persons.Save(ctx, model.Person{Login: "Alice123", Password: "h1"})
			Expect(err).NotTo(HaveOccurred())

			saved.Login = "Alicia"
			_, err = env.persons.Save(ctx, saved)
			Expect(err).NotTo(HaveOccurred())

			got, err := env.persons.FindByID(ctx, saved.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(&model.Person{ID: saved.ID, Login: "Alicia", Password: "h1"}))
		})

		It("rejects duplicate logins", func() {
			_, err := env.persons.Save(ctx, model.Person{Login: "Alice123", Password: "h1"})
			Expect(err).NotTo(HaveOccurred())

			_, err = env.persons.Save(ctx, model.Person{Login: "Alice123", Password: "h2"})
			Expect(err).To(MatchError(driven.ErrLoginTaken))
		})

		It("does not create a row for an unknown id", func() {
			_, err := env.persons.Save(ctx, model.Person{ID: 404, Login: "Ghost", Password: "h"})
			Expect(err).To(MatchError(driven.ErrPersonNotFound))

			all, err := env.persons.FindAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())
		})
	})

	Describe("FindByLogin", func() {
		It("returns nil for an unknown login", func() {
			got, err := env.persons.FindByLogin(ctx, "Nobody")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})
	})

	Describe("Delete", func() {
		It("removes the row", func() {
			saved, err := env.persons.Save(ctx, model.Person{Login: "Alice123", Password: "h1"})
			Expect(err).NotTo(HaveOccurred())

			Expect(env.persons.Delete(ctx, saved.ID)).To(Succeed())

			got, err := env.persons.FindByID(ctx, saved.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())

			Expect(env.persons.Delete(ctx, saved.ID)).To(MatchError(driven.ErrPersonNotFound))
		})
	})

	Describe("RunMigrations", func() {
		It("is idempotent", func() {
			Expect(postgres.RunMigrations(env.pool)).To(Succeed())
		})
	})
})
