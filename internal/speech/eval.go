package speech

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Vars resolves a dotted "namespace.field" path to a scalar, bool or
// []string. Implemented by mind.VariableContext.
type Vars interface {
	Resolve(path string) (any, bool)
}

// Placeholder delimiters.
const (
	openMark  = "{{"
	closeMark = "}}"
)

// Fill evaluates every placeholder in pattern against v. Conditionals are
// resolved first, then plain paths, left to right. A malformed placeholder
// becomes empty text and is logged at warn for template authors; a missing
// path becomes empty text. Fill never fails.
func Fill(pattern string, v Vars, log zerolog.Logger) string {
	out := fillPass(pattern, v, log, true)
	return fillPass(out, v, log, false)
}

// fillPass replaces either conditional or plain-path placeholders.
func fillPass(pattern string, v Vars, log zerolog.Logger, conditionals bool) string {
	var b strings.Builder
	rest := pattern
	for {
		i := strings.Index(rest, openMark)
		if i < 0 {
			b.WriteString(rest)
			return b.String()
		}
		j := strings.Index(rest[i+len(openMark):], closeMark)
		if j < 0 {
			// Unterminated placeholder, keep the text as written.
			b.WriteString(rest)
			return b.String()
		}
		body := rest[i+len(openMark) : i+len(openMark)+j]
		b.WriteString(rest[:i])
		whole := rest[i : i+len(openMark)+j+len(closeMark)]
		rest = rest[i+len(openMark)+j+len(closeMark):]

		n, err := Parse(body)
		if err != nil {
			log.Warn().Str("placeholder", body).Err(err).Msg("malformed template placeholder")
			continue
		}
		_, isCond := n.(*ConditionalNode)
		if isCond != conditionals {
			// Not this pass's kind, keep for the next pass.
			b.WriteString(whole)
			continue
		}
		b.WriteString(evalNode(n, v))
	}
}

// evalNode renders a node to its text value.
func evalNode(n Node, v Vars) string {
	switch t := n.(type) {
	case *PathNode:
		val, ok := resolvePath(t, v)
		if !ok {
			return ""
		}
		return valueText(val)
	case Literal:
		switch t.Kind {
		case LitString:
			return t.Str
		case LitNumber:
			return strconv.FormatFloat(t.Num, 'f', -1, 64)
		default:
			return strconv.FormatBool(t.Bool)
		}
	case *ConditionalNode:
		if evalCondition(t.Cond, v) {
			return t.WhenTrue.Str
		}
		return evalNode(t.WhenFalse, v)
	case *ComparisonNode:
		return strconv.FormatBool(evalComparison(t, v))
	}
	return ""
}

// evalCondition evaluates a conditional's test: a comparison, or path
// truthiness (missing path is false).
func evalCondition(n Node, v Vars) bool {
	switch t := n.(type) {
	case *ComparisonNode:
		return evalComparison(t, v)
	case *PathNode:
		val, ok := resolvePath(t, v)
		return ok && truthy(val)
	}
	return false
}

// evalComparison coerces both operands per the operator. Numeric operators
// parse both sides as numbers and yield false when either fails to parse.
func evalComparison(c *ComparisonNode, v Vars) bool {
	val, ok := resolvePath(c.Left, v)
	if !ok {
		// Missing path never satisfies a comparison.
		return false
	}
	switch c.Op {
	case "==", "!=":
		eq := looseEqual(val, c.Right)
		if c.Op == "!=" {
			return !eq
		}
		return eq
	case ">", "<", ">=", "<=":
		left, lok := toNumber(val)
		right, rok := literalNumber(c.Right)
		if !lok || !rok {
			return false
		}
		switch c.Op {
		case ">":
			return left > right
		case "<":
			return left < right
		case ">=":
			return left >= right
		default:
			return left <= right
		}
	}
	return false
}

func looseEqual(val any, lit Literal) bool {
	switch lit.Kind {
	case LitNumber:
		n, ok := toNumber(val)
		return ok && n == lit.Num
	case LitBool:
		return truthy(val) == lit.Bool
	default:
		return valueText(val) == lit.Str
	}
}

// resolvePath resolves a path and applies its array index if any. An index
// on a non-array or past the end resolves like a missing path.
func resolvePath(p *PathNode, v Vars) (any, bool) {
	if v == nil || len(p.Parts) == 0 {
		return nil, false
	}
	val, ok := v.Resolve(strings.Join(p.Parts, "."))
	if !ok {
		return nil, false
	}
	if p.Index < 0 {
		return val, true
	}
	arr, isArr := val.([]string)
	if !isArr || p.Index >= len(arr) {
		return nil, false
	}
	return arr[p.Index], true
}

// valueText renders a resolved value for output. Arrays join with ", ".
func valueText(val any) string {
	switch t := val.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []string:
		return strings.Join(t, ", ")
	case nil:
		return ""
	}
	return ""
}

// truthy follows the "missing means false" rules: empty strings, zero
// numbers, empty arrays and the string "false" are all false.
func truthy(val any) bool {
	switch t := val.(type) {
	case bool:
		return t
	case string:
		return t != "" && t != "false"
	case int:
		return t != 0
	case float64:
		return t != 0
	case []string:
		return len(t) > 0
	}
	return false
}

func toNumber(val any) (float64, bool) {
	switch t := val.(type) {
	case int:
		return float64(t), true
	case float64:
		return t, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return n, err == nil
	}
	return 0, false
}

func literalNumber(lit Literal) (float64, bool) {
	switch lit.Kind {
	case LitNumber:
		return lit.Num, true
	case LitString:
		n, err := strconv.ParseFloat(strings.TrimSpace(lit.Str), 64)
		return n, err == nil
	}
	return 0, false
}
