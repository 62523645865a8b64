package services_test

import (
	"context"
	"testing"

	"github.com/dafatir/dafatir_backend/internal/apperrors"
	"github.com/dafatir/dafatir_backend/internal/core/domain"
	portssvc "github.com/dafatir/dafatir_backend/internal/core/ports/services"
	"github.com/dafatir/dafatir_backend/internal/core/services"
	"github.com/dafatir/dafatir_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "AED",
		Symbol:       "د.إ",
		Name:         "UAE Dirham",
		Rate:         decimal.RequireFromString("3.6725"),
		Direction:    "MULTIPLY",
		UserID:       "user-1",
	}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "AED").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(nil).Once()

	created, err := suite.service.CreateCurrency(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("AED", created.CurrencyCode)
	suite.Equal(domain.ConvertMultiply, created.Direction)
	suite.False(created.IsBase)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_RejectsNonPositiveRate() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "JPY",
		Symbol:       "¥",
		Name:         "Japanese Yen",
		Rate:         decimal.Zero,
		Direction:    "DIVIDE",
		UserID:       "user-1",
	}

	_, err := suite.service.CreateCurrency(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency")
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_RejectsNoneDirectionOffBase() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "AED",
		Symbol:       "د.إ",
		Name:         "UAE Dirham",
		Rate:         decimal.RequireFromString("3.6725"),
		Direction:    "NONE",
		UserID:       "user-1",
	}

	_, err := suite.service.CreateCurrency(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_RejectsSecondBase() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "EUR",
		Symbol:       "€",
		Name:         "Euro",
		Rate:         decimal.NewFromInt(1),
		IsBase:       true,
		Direction:    "NONE",
		UserID:       "user-1",
	}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "EUR").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("ListCurrencies", ctx).Return([]domain.Currency{
		{CurrencyCode: "USD", IsBase: true, Direction: domain.ConvertNone, Rate: decimal.NewFromInt(1)},
	}, nil).Once()

	_, err := suite.service.CreateCurrency(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency")
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_RejectsBaseWithNonUnitRate() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "USD",
		Symbol:       "$",
		Name:         "US Dollar",
		Rate:         decimal.NewFromInt(2),
		IsBase:       true,
		Direction:    "NONE",
		UserID:       "user-1",
	}

	_, err := suite.service.CreateCurrency(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_RejectsDuplicate() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "AED",
		Symbol:       "د.إ",
		Name:         "UAE Dirham",
		Rate:         decimal.RequireFromString("3.6725"),
		Direction:    "MULTIPLY",
		UserID:       "user-1",
	}

	existing := &domain.Currency{CurrencyCode: "AED"}
	suite.mockRepo.On("FindCurrencyByCode", ctx, "AED").Return(existing, nil).Once()

	_, err := suite.service.CreateCurrency(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NormalizesCase() {
	ctx := context.Background()
	expected := &domain.Currency{CurrencyCode: "USD", IsBase: true}
	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(expected, nil).Once()

	got, err := suite.service.GetCurrencyByCode(ctx, "usd")

	suite.Require().NoError(err)
	suite.Equal("USD", got.CurrencyCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_RejectsBadLength() {
	_, err := suite.service.GetCurrencyByCode(context.Background(), "US")

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
