package http

import (
	"bytes"
	"encoding/json"
	"github.com/go-kit/log"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go-itc-ledger"
	"go-itc-ledger/bank"
	"go-itc-ledger/currency"
	"math"
	"net/http"
	"time"
)

// RequestIDHeader carries the id a request is logged under
const RequestIDHeader = "X-Request-Id"

// Server dependencies for HTTP Server functions
type Server struct {
	Bank      bank.Service
	Converter currency.Service
	Registry  *currency.Registry
	Logger    log.Logger

	router   *http.ServeMux
	validate *validator.Validate
}

func NewServer(b bank.Service, c currency.Service, r *currency.Registry, logger log.Logger) *Server {
	server := &Server{
		Bank:      b,
		Converter: c,
		Registry:  r,
		Logger:    logger,
		router:    http.NewServeMux(),
		validate:  validator.New(),
	}
	server.routes()
	return server
}

func (s *Server) routes() {
	s.router.Handle("POST /api/convert", s.convert())
	s.router.Handle("GET /api/currencies", s.currencies())
	s.router.Handle("POST /api/accounts", s.addAccount())
	s.router.Handle("POST /api/accounts/balance", s.getAccount())
	s.router.Handle("POST /api/accounts/remove", s.removeAccount())
	s.router.Handle("POST /api/deposit", s.deposit())
	s.router.Handle("POST /api/withdraw", s.withdraw())
	s.router.Handle("POST /api/transfer", s.transfer())
}

// ServeHTTP routes the request and logs it under a request id
func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	begin := time.Now()
	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}
	rw.Header().Set(RequestIDHeader, id)

	rec := &statusRecorder{ResponseWriter: rw, status: http.StatusOK}
	s.router.ServeHTTP(rec, r)

	s.Logger.Log(
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"request_id", id,
		"took", time.Since(begin),
	)
}

// statusRecorder remembers the status code written through it
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// convert produces HTTP handler for currency conversions
func (s *Server) convert() http.HandlerFunc {

	// request for unmarshalling JSON requests posted by clients
	type request struct {
		FromCurrency ledger.Code     `validate:"required"`
		ToCurrency   ledger.Code     `validate:"required"`
		Amount       decimal.Decimal
	}

	// response for marshalling JSON responses to return to clients
	type response struct {
		Exchange ledger.Ratio  `json:"exchange"`
		Amount   ledger.Amount `json:"amount"`
		Original ledger.Amount `json:"original"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		var req request
		if !s.decode(rw, r, &req) {
			return
		}

		amount := toAmount(req.Amount)
		result, err := s.Converter.Convert(amount, req.FromCurrency, req.ToCurrency)
		if err != nil {
			s.writeError(rw, err)
			return
		}
		if math.IsInf(float64(result.Amount), 0) || math.IsNaN(float64(result.Amount)) {
			s.writeJSON(rw, http.StatusBadRequest, errorResponse{Error: "converted amount out of range", Code: codeInvalidAmount})
			return
		}

		s.writeJSON(rw, http.StatusOK, response{
			Exchange: result.Rate,
			Amount:   result.Amount,
			Original: amount,
		})
	}
}

// currencies lists the registered currencies
func (s *Server) currencies() http.HandlerFunc {
	type item struct {
		Code   ledger.Code  `json:"code"`
		Symbol string       `json:"symbol"`
		Ratio  ledger.Ratio `json:"ratio"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		all := s.Registry.Currencies()
		out := make([]item, 0, len(all))
		for _, c := range all {
			out = append(out, item{Code: c.Code(), Symbol: c.Symbol(), Ratio: c.Ratio()})
		}
		s.writeJSON(rw, http.StatusOK, out)
	}
}

func (s *Server) addAccount() http.HandlerFunc {
	type request struct {
		Name     string          `json:"name" validate:"required"`
		Amount   decimal.Decimal `json:"amount"`
		Currency ledger.Code     `json:"currency"`
		Pin      string          `json:"pin" validate:"required"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		var req request
		if !s.decode(rw, r, &req) {
			return
		}
		initial, err := s.money(req.Amount, req.Currency)
		if err != nil {
			s.writeError(rw, err)
			return
		}
		if err := s.Bank.AddAccount(req.Name, initial, req.Pin); err != nil {
			s.writeError(rw, err)
			return
		}
		s.writeJSON(rw, http.StatusCreated, statusResponse{Status: "created"})
	}
}

func (s *Server) getAccount() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		var req credentials
		if !s.decode(rw, r, &req) {
			return
		}
		a, err := s.Bank.GetAccount(req.Name, req.Pin)
		if err != nil {
			s.writeError(rw, err)
			return
		}
		s.writeJSON(rw, http.StatusOK, newBalanceResponse(a.Name(), a.Balance()))
	}
}

func (s *Server) removeAccount() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		var req credentials
		if !s.decode(rw, r, &req) {
			return
		}
		final, err := s.Bank.RemoveAccount(req.Name, req.Pin)
		if err != nil {
			s.writeError(rw, err)
			return
		}
		s.writeJSON(rw, http.StatusOK, newBalanceResponse(req.Name, final))
	}
}

func (s *Server) deposit() http.HandlerFunc {
	type request struct {
		Name     string          `json:"name" validate:"required"`
		Amount   decimal.Decimal `json:"amount"`
		Currency ledger.Code     `json:"currency"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		var req request
		if !s.decode(rw, r, &req) {
			return
		}
		amount, err := s.money(req.Amount, req.Currency)
		if err != nil {
			s.writeError(rw, err)
			return
		}
		if err := s.Bank.Deposit(req.Name, amount); err != nil {
			s.writeError(rw, err)
			return
		}
		s.writeJSON(rw, http.StatusOK, statusResponse{Status: "ok"})
	}
}

func (s *Server) withdraw() http.HandlerFunc {
	type request struct {
		Name     string          `json:"name" validate:"required"`
		Amount   decimal.Decimal `json:"amount"`
		Currency ledger.Code     `json:"currency"`
		Pin      string          `json:"pin" validate:"required"`
	}

	type response struct {
		Amount  ledger.Amount `json:"amount"`
		Display string        `json:"display"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		var req request
		if !s.decode(rw, r, &req) {
			return
		}
		amount, err := s.money(req.Amount, req.Currency)
		if err != nil {
			s.writeError(rw, err)
			return
		}
		withdrawn, err := s.Bank.Withdraw(req.Name, amount, req.Pin)
		if err != nil {
			s.writeError(rw, err)
			return
		}
		s.writeJSON(rw, http.StatusOK, response{Amount: withdrawn.Amount(), Display: withdrawn.String()})
	}
}

func (s *Server) transfer() http.HandlerFunc {
	type request struct {
		From     string          `json:"from" validate:"required"`
		To       string          `json:"to" validate:"required"`
		Amount   decimal.Decimal `json:"amount"`
		Currency ledger.Code     `json:"currency"`
		Pin      string          `json:"pin" validate:"required"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		var req request
		if !s.decode(rw, r, &req) {
			return
		}
		amount, err := s.money(req.Amount, req.Currency)
		if err != nil {
			s.writeError(rw, err)
			return
		}
		if err := s.Bank.Transfer(req.From, req.To, amount, req.Pin); err != nil {
			s.writeError(rw, err)
			return
		}
		s.writeJSON(rw, http.StatusOK, statusResponse{Status: "ok"})
	}
}

// credentials identify an account and authorize access to it
type credentials struct {
	Name string `json:"name" validate:"required"`
	Pin  string `json:"pin" validate:"required"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type balanceResponse struct {
	Name    string        `json:"name"`
	Balance ledger.Amount `json:"balance"`
	Display string        `json:"display"`
}

func newBalanceResponse(name string, balance currency.Money) balanceResponse {
	return balanceResponse{Name: name, Balance: balance.Amount(), Display: balance.String()}
}

// decode reads and validates a JSON body into v. On failure it writes the
// error response and returns false.
func (s *Server) decode(rw http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(rw, http.StatusBadRequest, errorResponse{Error: "invalid json", Code: codeInvalidRequest})
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.writeJSON(rw, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: codeInvalidRequest})
		return false
	}
	return true
}

// money resolves code in the registry, defaulting to ITC
func (s *Server) money(amount decimal.Decimal, code ledger.Code) (currency.Money, error) {
	if code == "" {
		code = currency.ITC.Code()
	}
	return s.Registry.Money(toAmount(amount), code)
}

func toAmount(d decimal.Decimal) ledger.Amount {
	return ledger.Amount(d.InexactFloat64())
}

// writeJSON encodes v before committing status, so an unencodable value
// becomes a 500 instead of an empty success
func (s *Server) writeJSON(rw http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.Logger.Log("msg", "failed json encoding", "err", err)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "response not encodable", Code: codeInternal})
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if _, err := rw.Write(buf.Bytes()); err != nil {
		s.Logger.Log("msg", "failed writing response", "err", err)
	}
}
