package chat

import (
	"context"

	"go.uber.org/zap"

	inventoryapp "github.com/chefcode/backend/internal/application/inventory"
	"github.com/chefcode/backend/internal/domain/shared"
)

// Parse statuses the command parser may return.
const (
	StatusAskPrice = "ask_price"
	StatusComplete = "complete"
	StatusSuccess  = "success"
)

// ParsedItem is the structured form of a spoken inventory command.
type ParsedItem struct {
	ItemName   string  `json:"item_name"`
	Unit       string  `json:"unit"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Type       string  `json:"type"`
	LotNumber  *string `json:"lot_number"`
	ExpiryDate *string `json:"expiry_date"`
}

// ParseResult is the parser's verdict on one command: either the command is
// complete and carries a ParsedItem, or the parser needs the price and
// carries a follow-up question.
type ParseResult struct {
	Status     string      `json:"status"`
	Message    string      `json:"message"`
	ParsedData *ParsedItem `json:"parsed_data"`
}

// CommandParser extracts a structured inventory command from free text.
// Implemented by the language model client in the infrastructure layer.
type CommandParser interface {
	ParseCommand(ctx context.Context, prompt, language string) (*ParseResult, error)
}

// Inventory is the slice of the inventory service the chat flow drives.
// Satisfied by *inventory.Service from the application layer.
type Inventory interface {
	Add(ctx context.Context, req inventoryapp.CreateRequest) (*inventoryapp.AddResult, error)
}

// Response is the chat endpoint's reply.
type Response struct {
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	ParsedData *ParsedItem `json:"parsed_data,omitempty"`
}

// Service turns natural-language inventory commands into merge-adds. A
// complete parse goes straight into the inventory through the full
// HACCP-aware merge path; an incomplete one bounces the parser's follow-up
// question back to the user.
type Service struct {
	parser    CommandParser
	inventory Inventory
	logger    *zap.Logger
}

// NewService creates a new chat Service.
func NewService(parser CommandParser, inventory Inventory, logger *zap.Logger) *Service {
	return &Service{parser: parser, inventory: inventory, logger: logger}
}

// Parse handles one chat command in the requested language ("en" or "it";
// anything else falls back to English).
func (s *Service) Parse(ctx context.Context, prompt, lang string) (*Response, error) {
	msgs := messagesFor(lang)

	result, err := s.parser.ParseCommand(ctx, prompt, lang)
	if err != nil {
		s.logger.Error("chat command parsing failed", zap.Error(err))
		return nil, shared.NewDomainError("CHAT_PARSE_ERROR", msgs.parseFailed)
	}

	switch result.Status {
	case StatusAskPrice:
		return &Response{Status: StatusAskPrice, Message: result.Message}, nil
	case StatusComplete:
		if result.ParsedData == nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", msgs.unexpectedFormat)
		}
		data := result.ParsedData
		if _, err := s.inventory.Add(ctx, inventoryapp.CreateRequest{
			Name:       data.ItemName,
			Unit:       data.Unit,
			Quantity:   data.Quantity,
			Category:   data.Type,
			Price:      data.UnitPrice,
			LotNumber:  data.LotNumber,
			ExpiryDate: data.ExpiryDate,
		}); err != nil {
			s.logger.Error("chat inventory add failed", zap.Error(err))
			return nil, shared.NewDomainError("CHAT_PARSE_ERROR", msgs.processingError)
		}
		return &Response{
			Status:     StatusSuccess,
			Message:    msgs.itemAdded(data.ItemName),
			ParsedData: data,
		}, nil
	default:
		return nil, shared.NewDomainError("VALIDATION_ERROR", msgs.unexpectedFormat)
	}
}
