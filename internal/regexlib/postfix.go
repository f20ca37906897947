package regexlib

import "strings"

func precedence(k SymbolKind) int {
	switch k {
	case SymUnion:
		return 1
	case SymConcat:
		return 2
	case SymStar, SymPlus, SymOptional:
		return 3
	default:
		return 0
	}
}

// canEnd reports whether an expression may end with s.
func canEnd(s Symbol) bool {
	switch s.Kind {
	case SymOperand, SymRParen, SymStar, SymPlus, SymOptional:
		return true
	}
	return false
}

// canBegin reports whether an expression may start with s.
func canBegin(s Symbol) bool {
	return s.Kind == SymOperand || s.Kind == SymLParen
}

// InsertConcat makes implicit concatenation explicit.
func InsertConcat(syms []Symbol) []Symbol {
	out := make([]Symbol, 0, 2*len(syms))
	for i, s := range syms {
		out = append(out, s)
		if i+1 < len(syms) && canEnd(s) && canBegin(syms[i+1]) {
			out = append(out, Symbol{Kind: SymConcat, Pos: syms[i+1].Pos})
		}
	}
	return out
}

// ToPostfix rewrites an infix pattern into postfix order with the shunting
// yard algorithm. Unbalanced parentheses are reported as *PatternError;
// operator arity is checked later, while the NFA is built.
func ToPostfix(pattern string) ([]Symbol, error) {
	infix := InsertConcat(Scan(pattern))
	out := make([]Symbol, 0, len(infix))
	var stack []Symbol

	for _, s := range infix {
		switch s.Kind {
		case SymOperand:
			out = append(out, s)
		case SymLParen:
			stack = append(stack, s)
		case SymRParen:
			for len(stack) > 0 && stack[len(stack)-1].Kind != SymLParen {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, &PatternError{Pattern: pattern, Pos: s.Pos, Msg: "unbalanced )"}
			}
			stack = stack[:len(stack)-1]
		default:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind == SymLParen || precedence(top.Kind) < precedence(s.Kind) {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, s)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.Kind == SymLParen {
			return nil, &PatternError{Pattern: pattern, Pos: top.Pos, Msg: "unclosed ("}
		}
		out = append(out, top)
		stack = stack[:len(stack)-1]
	}
	return out, nil
}

// FormatPostfix renders a postfix sequence, using · for concatenation.
// Operand runes that collide with operators are escaped.
func FormatPostfix(syms []Symbol) string {
	var b strings.Builder
	for _, s := range syms {
		if s.Kind == SymOperand {
			b.WriteString(escapeRune(s.Rune))
			continue
		}
		b.WriteString(s.String())
	}
	return b.String()
}

func escapeRune(r rune) string {
	switch r {
	case '*', '+', '?', '|', '(', ')', '\\':
		return "\\" + string(r)
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	default:
		return string(r)
	}
}
