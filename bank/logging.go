package bank

import (
	"github.com/go-kit/log"
	"go-itc-ledger/currency"
	"time"
)

// loggingService decorates a bank.Service with logging. PINs are never logged.
type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) AddAccount(name string, initial currency.Money, pin string) (err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "add_account",
			"name", name,
			"initial", initial,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.AddAccount(name, initial, pin)
}

func (s *loggingService) RemoveAccount(name, pin string) (balance currency.Money, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "remove_account",
			"name", name,
			"balance", balance,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.RemoveAccount(name, pin)
}

func (s *loggingService) GetAccount(name, pin string) (a Account, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "get_account",
			"name", name,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.GetAccount(name, pin)
}

func (s *loggingService) Deposit(name string, amount currency.Money) (err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "deposit",
			"name", name,
			"amount", amount,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Deposit(name, amount)
}

func (s *loggingService) Withdraw(name string, amount currency.Money, pin string) (withdrawn currency.Money, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "withdraw",
			"name", name,
			"amount", amount,
			"withdrawn", withdrawn,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Withdraw(name, amount, pin)
}

func (s *loggingService) Transfer(from, to string, amount currency.Money, pin string) (err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "transfer",
			"from", from,
			"to", to,
			"amount", amount,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Transfer(from, to, amount, pin)
}
