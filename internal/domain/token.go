package domain

import (
	"fmt"
	"sort"
	"strings"
)

const UnknownTokenSymbol = "Unknown"

type Token struct {
	Name    string
	Symbol  string
	Address string
}

type TokenRegistry struct {
	tokens []Token
}

func NewTokenRegistry(tokens ...Token) TokenRegistry {
	sorted := append([]Token(nil), tokens...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Symbol < sorted[j].Symbol })

	return TokenRegistry{tokens: sorted}
}

func (r TokenRegistry) All() []Token {
	return append([]Token(nil), r.tokens...)
}

func (r TokenRegistry) BySymbol(symbol string) (Token, bool) {
	for _, token := range r.tokens {
		if strings.EqualFold(token.Symbol, strings.TrimSpace(symbol)) {
			return token, true
		}
	}

	return Token{}, false
}

func (r TokenRegistry) ByAddress(address string) (Token, bool) {
	for _, token := range r.tokens {
		if token.Address == address {
			return token, true
		}
	}

	return Token{}, false
}

func (r TokenRegistry) SymbolFor(address string) string {
	if token, ok := r.ByAddress(address); ok {
		return token.Symbol
	}

	return UnknownTokenSymbol
}

// Resolve accepts either a symbol or a raw process address.
func (r TokenRegistry) Resolve(symbolOrAddress string) (Token, error) {
	if token, ok := r.BySymbol(symbolOrAddress); ok {
		return token, nil
	}
	if token, ok := r.ByAddress(symbolOrAddress); ok {
		return token, nil
	}

	return Token{}, fmt.Errorf("%w: unknown token %q", ErrInvalidRequest, symbolOrAddress)
}
