package importer

import (
	"fmt"
	"io"

	"github.com/vnme1/subscription-tracker/internal/importer/card"
	"github.com/vnme1/subscription-tracker/internal/transaction"
)

// Source identifies a statement export format.
type Source string

const (
	// SourceCard is the common Korean card-company CSV layout:
	// date, merchant, amount, then optional category/description/card number.
	SourceCard Source = "card"
)

type Parser interface {
	Parse(r io.Reader, hasHeader bool) ([]transaction.Transaction, error)
}

type Service struct {
	cardParser Parser
}

func NewService() *Service {
	return &Service{
		cardParser: card.NewParser(),
	}
}

func (s *Service) Import(source Source, r io.Reader, hasHeader bool) ([]transaction.Transaction, error) {
	var parser Parser

	switch source {
	case SourceCard:
		parser = s.cardParser
	default:
		return nil, fmt.Errorf("unknown source: %s", source)
	}

	return parser.Parse(r, hasHeader)
}
