package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Asset symbols.
const (
	SymbolHBD   = "HBD"
	SymbolHive  = "HIVE"
	SymbolVests = "VESTS"
)

// AssetPrecision is the number of decimals of HBD and HIVE amounts.
const AssetPrecision = 3

var naiSymbols = map[string]string{
	"@@000000013": SymbolHBD,
	"@@000000021": SymbolHive,
	"@@000000037": SymbolVests,
}

// Asset is an amount of a chain currency.
type Asset struct {
	Amount decimal.Decimal
	Symbol string
}

// HBD builds an HBD asset.
func HBD(amount decimal.Decimal) Asset {
	return Asset{Amount: amount, Symbol: SymbolHBD}
}

// String renders the asset in the chain's text form, e.g. "1.000 HBD".
func (a Asset) String() string {
	return a.Amount.StringFixed(AssetPrecision) + " " + a.Symbol
}

// ParseAsset parses the "<number> <SYMBOL>" text form.
func ParseAsset(s string) (Asset, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Asset{}, fmt.Errorf("malformed asset %q", s)
	}
	amount, err := decimal.NewFromString(parts[0])
	if err != nil {
		return Asset{}, fmt.Errorf("malformed asset amount %q: %w", parts[0], err)
	}
	return Asset{Amount: amount, Symbol: parts[1]}, nil
}

// ParseAssetJSON parses an asset from either its text form or its NAI object
// form {"amount": "12345", "precision": 3, "nai": "@@000000013"}.
func ParseAssetJSON(v gjson.Result) (Asset, error) {
	if !v.Exists() {
		return Asset{}, fmt.Errorf("asset missing")
	}
	if !v.IsObject() {
		return ParseAsset(v.String())
	}
	raw, err := decimal.NewFromString(v.Get("amount").String())
	if err != nil {
		return Asset{}, fmt.Errorf("malformed nai amount %q: %w", v.Get("amount").String(), err)
	}
	nai := v.Get("nai").String()
	symbol, ok := naiSymbols[nai]
	if !ok {
		return Asset{}, fmt.Errorf("unknown nai %q", nai)
	}
	return Asset{Amount: raw.Shift(-int32(v.Get("precision").Int())), Symbol: symbol}, nil
}
