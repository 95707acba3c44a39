//go:build integration

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"mugix-storefront/db"
	"mugix-storefront/models"
)

type RepositorySuite struct {
	suite.Suite
	ctx        context.Context
	container  *postgres.PostgresContainer
	conn       *sql.DB
	products   *ProductRepository
	categories *CategoryRepository
	contacts   *ContactRepository
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	var err error
	s.container, err = postgres.Run(
		s.ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("mugix_test"),
		postgres.WithUsername("mugix"),
		postgres.WithPassword("mugix"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)

	connStr, err := s.container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.conn, err = sql.Open("pgx", connStr)
	s.Require().NoError(err)
	s.Require().NoError(db.Migrate(s.conn, zap.NewNop()))

	logger := zap.NewNop()
	s.products = NewProductRepository(s.conn, logger)
	s.categories = NewCategoryRepository(s.conn, logger)
	s.contacts = NewContactRepository(s.conn, logger)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(s.ctx))
	}
}

func (s *RepositorySuite) SetupTest() {
	_, err := s.conn.ExecContext(s.ctx, "TRUNCATE products, categories, contacts CASCADE")
	s.Require().NoError(err)
}

func (s *RepositorySuite) createCategory(name string) *models.Category {
	c, err := s.categories.Create(s.ctx, models.CategoryInput{Name: name})
	s.Require().NoError(err)
	return c
}

func (s *RepositorySuite) TestProductRoundTripKeepsImageOrderAndColors() {
	cat := s.createCategory("Mugs")

	created, err := s.products.Create(s.ctx, &models.Product{
		Name:       "Mug Ember Noir",
		Price:      decimal.RequireFromString("89.00"),
		Images:     []string{"/uploads/b.jpg", "/uploads/a.jpg"},
		CategoryID: &cat.ID,
		Available:  true,
		Colors: []models.ProductColor{
			{Name: "Noir Charbon", Hex: "#1a1a1a"},
			{Name: "Bordeaux", Hex: "#6d071a"},
		},
	})
	s.Require().NoError(err)

	got, err := s.products.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal([]string{"/uploads/b.jpg", "/uploads/a.jpg"}, got.Images)
	s.Require().NotNil(got.ImageURL)
	s.Equal("/uploads/b.jpg", *got.ImageURL)
	s.True(got.Price.Equal(decimal.RequireFromString("89")))
	s.Len(got.Colors, 2)
	s.Require().NotNil(got.Category)
	s.Equal("Mugs", got.Category.Name)
}

func (s *RepositorySuite) TestLegacyImageURLBecomesSoleImage() {
	legacy := "/uploads/legacy.jpg"
	created, err := s.products.Create(s.ctx, &models.Product{
		Name:     "Tasse",
		Price:    decimal.NewFromInt(50),
		ImageURL: &legacy,
	})
	s.Require().NoError(err)
	s.Equal([]string{legacy}, created.Images)
}

func (s *RepositorySuite) TestUpdateImages() {
	created, err := s.products.Create(s.ctx, &models.Product{Name: "Bol", Price: decimal.NewFromInt(30)})
	s.Require().NoError(err)

	updated, err := s.products.UpdateImages(s.ctx, created.ID, []string{"/uploads/x.jpg", "/uploads/y.jpg"})
	s.Require().NoError(err)
	s.Equal("/uploads/x.jpg", *updated.ImageURL)

	cleared, err := s.products.UpdateImages(s.ctx, created.ID, nil)
	s.Require().NoError(err)
	s.Empty(cleared.Images)
	s.Nil(cleared.ImageURL)
}

func (s *RepositorySuite) TestDeletingCategoryKeepsProducts() {
	cat := s.createCategory("Temporary")
	created, err := s.products.Create(s.ctx, &models.Product{
		Name:       "Mug",
		Price:      decimal.NewFromInt(10),
		CategoryID: &cat.ID,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.categories.Delete(s.ctx, cat.ID))

	got, err := s.products.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Nil(got.CategoryID)
	s.Nil(got.Category)
}

func (s *RepositorySuite) TestListFilters() {
	mugs := s.createCategory("Mugs")
	plates := s.createCategory("Assiettes")

	_, err := s.products.Create(s.ctx, &models.Product{Name: "Mug Ember", Price: decimal.NewFromInt(1), CategoryID: &mugs.ID})
	s.Require().NoError(err)
	_, err = s.products.Create(s.ctx, &models.Product{Name: "Assiette Sable", Price: decimal.NewFromInt(1), CategoryID: &plates.ID})
	s.Require().NoError(err)

	byCategory, err := s.products.List(s.ctx, models.ProductFilters{CategoryID: mugs.ID})
	s.Require().NoError(err)
	s.Require().Len(byCategory, 1)
	s.Equal("Mug Ember", byCategory[0].Name)

	bySearch, err := s.products.List(s.ctx, models.ProductFilters{Search: "sable"})
	s.Require().NoError(err)
	s.Require().Len(bySearch, 1)
	s.Equal("Assiette Sable", bySearch[0].Name)

	all, err := s.products.List(s.ctx, models.ProductFilters{})
	s.Require().NoError(err)
	s.Len(all, 2)
	// newest first
	s.Equal("Assiette Sable", all[0].Name)
}

func (s *RepositorySuite) TestUnknownCategoryIsRejected() {
	missing := "7b1f3c0e-4a55-4a8e-9a0e-2f7f0c4d9b11"
	_, err := s.products.Create(s.ctx, &models.Product{Name: "X", Price: decimal.NewFromInt(1), CategoryID: &missing})
	s.ErrorIs(err, ErrInvalidReference)
}

func (s *RepositorySuite) TestNotFound() {
	_, err := s.products.GetByID(s.ctx, "not-a-uuid")
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(s.products.Delete(s.ctx, "7b1f3c0e-4a55-4a8e-9a0e-2f7f0c4d9b11"), ErrNotFound)
	s.ErrorIs(s.contacts.Delete(s.ctx, "7b1f3c0e-4a55-4a8e-9a0e-2f7f0c4d9b11"), ErrNotFound)
}

func (s *RepositorySuite) TestContacts() {
	phone := "+212600000000"
	c, err := s.contacts.Create(s.ctx, models.ContactInput{
		FirstName: "Sara",
		LastName:  "B",
		Email:     "sara@example.com",
		Phone:     &phone,
		Message:   "Bonjour",
	})
	s.Require().NoError(err)

	list, err := s.contacts.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(c.ID, list[0].ID)
	s.Equal(phone, *list[0].Phone)

	s.Require().NoError(s.contacts.Delete(s.ctx, c.ID))
}
