package currency

import (
	"fmt"
	"go-itc-ledger"
)

// Service converts amounts between currencies identified by code
type Service interface {
	Convert(amount ledger.Amount, from ledger.Code, to ledger.Code) (ledger.Exchanged, error)
}

// service converts with the fixed ratios of a Source
type service struct {
	// source to resolve currency codes
	source Source
}

// NewService constructs a valid Service
func NewService(s Source) Service {
	return &service{
		source: s,
	}
}

// Convert computes a conversion from one currency to another.
// The rate is from.ratio / to.ratio.
func (s *service) Convert(amount ledger.Amount, from ledger.Code, to ledger.Code) (ledger.Exchanged, error) {
	src, err := s.source.Lookup(from)
	if err != nil {
		return ledger.Exchanged{}, fmt.Errorf("convert from [%v]: %w", from, err)
	}
	dst, err := s.source.Lookup(to)
	if err != nil {
		return ledger.Exchanged{}, fmt.Errorf("convert to [%v]: %w", to, err)
	}

	result := ledger.Exchanged{
		Rate:   src.Ratio() / dst.Ratio(),
		Amount: src.Of(amount).ConvertTo(dst).Amount(),
	}

	return result, nil
}
