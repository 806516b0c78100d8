package types

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// DescendingFlag prefixes a token to sort that attribute descending
const DescendingFlag = "-"

// ErrEmptyPrecedence is the cause inside a PrecedenceError for an empty list
var ErrEmptyPrecedence = errors.New("precedence list is empty")

// OrderClause represents a single entry of a precedence list
type OrderClause struct {
	Column     string
	Descending bool
}

// Token renders the clause back into its token form (e.g. "-name")
func (c OrderClause) Token() string {
	if c.Descending {
		return DescendingFlag + c.Column
	}
	return c.Column
}

// Reversed returns the clause with its direction flipped
func (c OrderClause) Reversed() OrderClause {
	return OrderClause{Column: c.Column, Descending: !c.Descending}
}

// ParseOrderClause parses one attribute name token. A single leading "-"
// marks the attribute descending; the rest must be a non-blank name without
// whitespace.
func ParseOrderClause(token string) (OrderClause, error) {
	column, descending := strings.CutPrefix(token, DescendingFlag)

	switch {
	case column == "":
		return OrderClause{}, errors.New("blank attribute name")
	case strings.HasPrefix(column, DescendingFlag):
		return OrderClause{}, errors.New("more than one leading descending flag")
	case strings.IndexFunc(column, unicode.IsSpace) >= 0:
		return OrderClause{}, errors.New("attribute name contains whitespace")
	}

	return OrderClause{Column: column, Descending: descending}, nil
}

// Precedence is an ordered list of order clauses. Entry 0 is compared first.
type Precedence []OrderClause

// ParsePrecedence parses a non-empty list of tokens
func ParsePrecedence(tokens []string) (Precedence, error) {
	if len(tokens) == 0 {
		return nil, &PrecedenceError{Index: -1, Err: ErrEmptyPrecedence}
	}

	p := make(Precedence, 0, len(tokens))
	for i, token := range tokens {
		clause, err := ParseOrderClause(token)
		if err != nil {
			return nil, &PrecedenceError{Index: i, Token: token, Err: err}
		}
		p = append(p, clause)
	}
	return p, nil
}

// SplitTokens splits comma separated token lists such as "name,-age" and
// trims the surrounding whitespace of every token. Empty entries are kept so
// that ParsePrecedence can reject them with their index.
func SplitTokens(lists ...string) []string {
	var tokens []string
	for _, list := range lists {
		for _, token := range strings.Split(list, ",") {
			tokens = append(tokens, strings.TrimSpace(token))
		}
	}
	return tokens
}

// Tokens renders every clause back into token form
func (p Precedence) Tokens() []string {
	tokens := make([]string, len(p))
	for i, c := range p {
		tokens[i] = c.Token()
	}
	return tokens
}

// Columns returns the bare attribute names in precedence order
func (p Precedence) Columns() []string {
	columns := make([]string, len(p))
	for i, c := range p {
		columns[i] = c.Column
	}
	return columns
}

// Reversed returns a copy with every direction flipped
func (p Precedence) Reversed() Precedence {
	r := make(Precedence, len(p))
	for i, c := range p {
		r[i] = c.Reversed()
	}
	return r
}

// String renders the list as "[name, -age]"
func (p Precedence) String() string {
	return fmt.Sprintf("[%s]", strings.Join(p.Tokens(), ", "))
}
