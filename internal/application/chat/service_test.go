package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	inventoryapp "github.com/chefcode/backend/internal/application/inventory"
	"github.com/chefcode/backend/internal/domain/shared"
)

type MockParser struct{ mock.Mock }

func (m *MockParser) ParseCommand(ctx context.Context, prompt, language string) (*ParseResult, error) {
	args := m.Called(ctx, prompt, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ParseResult), args.Error(1)
}

type MockInventory struct{ mock.Mock }

func (m *MockInventory) Add(ctx context.Context, req inventoryapp.CreateRequest) (*inventoryapp.AddResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.AddResult), args.Error(1)
}

func TestParse_CompleteCommandAddsToInventory(t *testing.T) {
	parser := new(MockParser)
	inv := new(MockInventory)
	svc := NewService(parser, inv, zap.NewNop())

	lot := "L-42"
	parser.On("ParseCommand", mock.Anything, "add 5 kg beef lot L-42", "en").
		Return(&ParseResult{
			Status: StatusComplete,
			ParsedData: &ParsedItem{
				ItemName: "beef", Unit: "kg", Quantity: 5, UnitPrice: 12.90,
				Type: "meat", LotNumber: &lot,
			},
		}, nil)
	inv.On("Add", mock.Anything, mock.MatchedBy(func(req inventoryapp.CreateRequest) bool {
		return req.Name == "beef" && req.Category == "meat" &&
			req.Price == 12.90 && req.LotNumber != nil && *req.LotNumber == "L-42"
	})).Return(&inventoryapp.AddResult{Created: true}, nil)

	resp, err := svc.Parse(context.Background(), "add 5 kg beef lot L-42", "en")

	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, "Item 'beef' added to inventory.", resp.Message)
	require.NotNil(t, resp.ParsedData)
	inv.AssertExpectations(t)
}

func TestParse_ItalianMessages(t *testing.T) {
	parser := new(MockParser)
	inv := new(MockInventory)
	svc := NewService(parser, inv, zap.NewNop())

	parser.On("ParseCommand", mock.Anything, mock.Anything, "it").
		Return(&ParseResult{
			Status:     StatusComplete,
			ParsedData: &ParsedItem{ItemName: "farina", Unit: "kg", Quantity: 10, UnitPrice: 0.80},
		}, nil)
	inv.On("Add", mock.Anything, mock.Anything).Return(&inventoryapp.AddResult{Created: true}, nil)

	resp, err := svc.Parse(context.Background(), "aggiungi 10 kg di farina a 0,80", "it")

	require.NoError(t, err)
	assert.Equal(t, "Articolo 'farina' aggiunto all'inventario.", resp.Message)
}

func TestParse_RegionalTagMatchesBaseLanguage(t *testing.T) {
	parser := new(MockParser)
	inv := new(MockInventory)
	svc := NewService(parser, inv, zap.NewNop())

	parser.On("ParseCommand", mock.Anything, mock.Anything, "it-CH").
		Return(nil, errors.New("model unavailable"))

	_, err := svc.Parse(context.Background(), "aggiungi farina", "it-CH")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Impossibile analizzare la risposta AI. Riprova.", domainErr.Message)
}

func TestParse_AskPricePassesQuestionThrough(t *testing.T) {
	parser := new(MockParser)
	inv := new(MockInventory)
	svc := NewService(parser, inv, zap.NewNop())

	parser.On("ParseCommand", mock.Anything, mock.Anything, "en").
		Return(&ParseResult{Status: StatusAskPrice, Message: "Price?"}, nil)

	resp, err := svc.Parse(context.Background(), "add 5 kg beef", "en")

	require.NoError(t, err)
	assert.Equal(t, StatusAskPrice, resp.Status)
	assert.Equal(t, "Price?", resp.Message)
	inv.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestParse_UnexpectedStatusRejected(t *testing.T) {
	parser := new(MockParser)
	inv := new(MockInventory)
	svc := NewService(parser, inv, zap.NewNop())

	parser.On("ParseCommand", mock.Anything, mock.Anything, "en").
		Return(&ParseResult{Status: "shrug"}, nil)

	_, err := svc.Parse(context.Background(), "do something", "en")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
}

func TestParse_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	parser := new(MockParser)
	inv := new(MockInventory)
	svc := NewService(parser, inv, zap.NewNop())

	parser.On("ParseCommand", mock.Anything, mock.Anything, "zz").
		Return(&ParseResult{Status: "shrug"}, nil)

	_, err := svc.Parse(context.Background(), "??", "zz")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Unexpected AI response format", domainErr.Message)
}
