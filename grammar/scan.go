package grammar

import (
	"errors"
	"fmt"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token values for the lexemes of list operands, as in
//
//     array a: [1, "one, two", x]
//     f(a, b)
//
const (
	ItemTok   int = iota // bare element text
	StringTok            // double-quoted element text
	CommaTok             // element separator
)

var listLexer *lexmachine.Lexer // will be set in initLexer()
var lexerError error
var initOnce sync.Once // monitors one-time initialization

func initLexer() {
	initOnce.Do(func() {
		lexer := lexmachine.NewLexer()
		lexer.Add([]byte(`( |\t)+`), skip) // blanks separate nothing
		lexer.Add([]byte(`,`), makeToken(CommaTok))
		lexer.Add([]byte(`"[^"]*"`), makeToken(StringTok))
		lexer.Add([]byte(`[^, \t"]+`), makeToken(ItemTok))
		if lexerError = lexer.Compile(); lexerError != nil {
			tracer().Errorf("cannot compile list lexer: %v", lexerError)
			return
		}
		listLexer = lexer
	})
}

func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// errEmptyElement flags a list with an empty element, e.g. "1,,2".
var errEmptyElement = errors.New("empty list element")

// SplitList splits the text of a list operand into its elements. Elements are
// separated by commas, except for commas within double quotes. Each element
// is returned trimmed, but otherwise verbatim. Blanks inside an element are
// kept, thus "a b, c" yields the elements "a b" and "c".
func SplitList(text string) ([]string, error) {
	initLexer()
	if lexerError != nil {
		return nil, lexerError
	}
	scanner, err := listLexer.Scanner([]byte(text))
	if err != nil {
		return nil, err
	}
	var elems []string
	var first, last *lexmachine.Token
	flush := func() error {
		if first == nil {
			return errEmptyElement
		}
		elems = append(elems, text[first.TC:last.TC+len(last.Lexeme)])
		first, last = nil, nil
		return nil
	}
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if ui, is := err.(*machines.UnconsumedInput); is {
			return nil, fmt.Errorf("unterminated string at column %d", ui.FailTC+1)
		} else if err != nil {
			return nil, err
		}
		token := tok.(*lexmachine.Token)
		tracer().Debugf("list token %d = %q", token.Type, token.Value)
		if token.Type == CommaTok {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if first == nil {
			first = token
		}
		last = token
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return elems, nil
}
