package currency

import (
	"bytes"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"go-itc-ledger"
	"reflect"
	"strings"
	"testing"
)

type mock struct {
	currencies map[ledger.Code]Currency
}

func (m *mock) Lookup(code ledger.Code) (Currency, error) {
	c, ok := m.currencies[code]
	if !ok {
		return Currency{}, ErrUnknownCurrency
	}
	return c, nil
}

func TestService_Convert(t *testing.T) {
	foo := MustNew("FOO", "f", 2.0)
	bar := MustNew("BAR", "b", 0.5)

	src := &mock{
		currencies: map[ledger.Code]Currency{
			"FOO": foo,
			"BAR": bar,
			"ITC": ITC,
		},
	}

	service := &service{
		source: src,
	}

	type args struct {
		amount ledger.Amount
		from   ledger.Code
		to     ledger.Code
	}
	tests := []struct {
		name    string
		args    args
		want    ledger.Exchanged
		wantErr bool
	}{
		{
			"foo -> bar",
			args{10.0, "FOO", "BAR"},
			ledger.Exchanged{Rate: 4.0, Amount: 40.0},
			false,
		},
		{
			"bar -> foo",
			args{10.0, "BAR", "FOO"},
			ledger.Exchanged{Rate: 0.25, Amount: 2.5},
			false,
		},
		{
			"foo -> itc",
			args{10.0, "FOO", "ITC"},
			ledger.Exchanged{Rate: 2.0, Amount: 20.0},
			false,
		},
		{
			"itc -> itc",
			args{10.0, "ITC", "ITC"},
			ledger.Exchanged{Rate: 1.0, Amount: 10.0},
			false,
		},
		{
			"foo -> xyz",
			args{10.0, "FOO", "XYZ"},
			ledger.Exchanged{},
			true,
		},
		{
			"abc -> foo",
			args{10.0, "ABC", "FOO"},
			ledger.Exchanged{},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.Convert(tt.args.amount, tt.args.from, tt.args.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("Convert() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Convert() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoggingService_Convert(t *testing.T) {
	r, err := NewRegistry(MustNew("FOO", "f", 2.0))
	assert.NoError(t, err)

	var buf bytes.Buffer
	s := NewLoggingService(log.NewLogfmtLogger(&buf), NewService(r))

	ex, err := s.Convert(3, "FOO", "ITC")
	assert.NoError(t, err)
	assert.Equal(t, ledger.Exchanged{Rate: 2, Amount: 6}, ex)

	line := buf.String()
	assert.True(t, strings.Contains(line, "method=convert"), line)
	assert.True(t, strings.Contains(line, "converted_amount=6"), line)
	assert.True(t, strings.Contains(line, "err=null"), line)
}
