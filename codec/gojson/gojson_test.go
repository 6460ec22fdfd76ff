package gojson

import (
	"testing"

	"github.com/goccy/go-json"

	"github.com/kbukum/fuel/codec"
	apperrors "github.com/kbukum/fuel/errors"
)

type card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// loose has an interface field; the descriptor itself is not erased.
type loose struct {
	N any `json:"n"`
}

func TestProvider_Decode(t *testing.T) {
	cards, err := codec.Decode[[]card](codec.BytesSource(`[{"rank":"4","suit":"CLUBS"},{"rank":"A","suit":"HEARTS"}]`), codec.Type{}, Default())
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 2 || cards[0].Suit != "CLUBS" {
		t.Errorf("unexpected cards %+v", cards)
	}
}

func TestProvider_Options(t *testing.T) {
	body := codec.BytesSource(`{"rank":"4","suit":"CLUBS","joker":true}`)
	if _, err := codec.Decode[card](body, codec.Type{}, Default()); err != nil {
		t.Errorf("expected unknown fields ignored by default, got %v", err)
	}
	if _, err := codec.Decode[card](body, codec.Type{}, New(DisallowUnknownFields())); !apperrors.IsDecode(err) {
		t.Errorf("expected DECODE_ERROR, got %v", err)
	}

	v, err := codec.Decode[loose](codec.BytesSource(`{"n":12345678901234567890}`), codec.Type{}, New(UseNumber()))
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := v.N.(json.Number); !ok || n.String() != "12345678901234567890" {
		t.Errorf("expected exact json.Number, got %T %v", v.N, v.N)
	}
}

func TestFactory(t *testing.T) {
	p, err := Factory(nil)
	if err != nil || p != codec.Provider(Default()) {
		t.Errorf("expected default provider for nil config, got %v, %v", p, err)
	}
	p, err = Factory(map[string]any{"disallow_unknown_fields": true, "use_number": "true"})
	if err != nil {
		t.Fatal(err)
	}
	sp := p.(*Provider)
	if !sp.disallowUnknown || !sp.useNumber {
		t.Errorf("expected options applied, got %+v", sp)
	}
	if _, err := Factory(map[string]any{"strict": true}); !apperrors.IsInvalidConfig(err) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestProvider_Name(t *testing.T) {
	if Default().Name() != Name {
		t.Errorf("expected %s, got %s", Name, Default().Name())
	}
	if !Default().IsAvailable(t.Context()) {
		t.Error("expected provider available")
	}
}

func TestProvider_RejectsTrailingData(t *testing.T) {
	if _, err := codec.Decode[card](codec.BytesSource(`{"rank":"4"} {}`), codec.Type{}, Default()); !apperrors.IsDecode(err) {
		t.Errorf("expected DECODE_ERROR, got %v", err)
	}
}
