package parser

import (
	"github.com/sus-lang/sus-parser/internal/lexer"
)

type delimitedConfig struct {
	Closing   lexer.TokenType
	Separator lexer.TokenType

	// Newlines allows a newline run right after the opening token and right
	// before the closing one. A newline run after a separator is always
	// allowed.
	Newlines bool
}

// parseDelimited parses separator-joined items up to the closing token. It
// starts with curTok on the opening token and leaves curTok on the closing
// token. Trailing separators are not accepted.
func parseDelimited[T any](p *Parser, cfg delimitedConfig, parseItem func() (T, bool)) ([]T, bool) {
	if cfg.Separator == "" {
		cfg.Separator = lexer.COMMA
	}

	if cfg.Closing == "" {
		panic("parseDelimited requires a closing token")
	}

	p.nextToken() // move past the opening token
	if cfg.Newlines {
		p.skipNewline()
	}

	var items []T
	if p.curTok.Type == cfg.Closing {
		return items, true
	}

	for {
		first := p.curTok
		item, ok := parseItem()
		if !ok {
			if len(items) == 0 {
				p.fail(first, tokenName(cfg.Closing))
			}
			return nil, false
		}
		items = append(items, item)

		switch p.peekTok.Type {
		case cfg.Separator:
			p.nextToken() // move to separator
			p.nextToken() // move to next element
			p.skipNewline()
			continue
		case cfg.Closing:
			p.nextToken()
			return items, true
		case lexer.NEWLINE:
			if cfg.Newlines && p.peekTokenAt(1).Type == cfg.Closing {
				p.nextToken()
				p.nextToken()
				return items, true
			}
		}

		expected := []string{tokenName(cfg.Separator), tokenName(cfg.Closing)}
		if cfg.Newlines {
			expected = append(expected, "newline")
		}
		p.fail(p.peekTok, expected...)
		return nil, false
	}
}
