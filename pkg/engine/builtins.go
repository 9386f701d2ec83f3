package engine

import (
	"fmt"
	"strings"

	"github.com/apexpath/stationviz/pkg/config"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms preset Lisp source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: second-sink -> second_sink
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value; treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
			result.order = append(result.order, name)
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_legs) and plain strings ("legs").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// boolFlags maps preset keyword names to their Patch fields. Keyword
// names are kebab-case as preset authors write them; the keyword scan
// in preprocessSource keeps the hyphens.
func boolFlags(p *config.Patch) map[string]**bool {
	return map[string]**bool{
		"height-adjust":      &p.HeightAdjust,
		"front-air":          &p.FrontAirSystem,
		"formalin-detection": &p.FormalinDetection,
		"downdraft":          &p.DowndraftVent,
		"disposal":           &p.Disposal,
		"second-sink":        &p.SecondSink,
		"path-cam":           &p.PathCam,
		"monitor-arm":        &p.MonitorArm,
		"magnet-bar":         &p.MagnetBar,
		"drawers":            &p.Drawers,
		"led-strip":          &p.LEDStrip,
		"pegboard-wing":      &p.PegboardWing,
		"formalin-dispenser": &p.FormalinDispenser,
	}
}

// registerBuiltins installs the preset DSL builtins into a zygomys
// environment. The builtins write into the provided patch; later calls
// and later keywords win, so a preset reads top to bottom.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, p *config.Patch) {

	// -----------------------------------------------------------------------
	// (station :width 96 :base :legs :sink :center
	//          :second-sink true :drawers true)
	// -----------------------------------------------------------------------
	env.AddFunction("station", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		flags := boolFlags(p)

		for _, key := range pa.order {
			v := pa.kw[key]
			switch key {
			case "width":
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("station: width: %w", err)
				}
				w := int(f)
				p.Width = &w
			case "base":
				s, err := toKeywordString(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("station: base: %w", err)
				}
				p.BaseStyle = &s
			case "sink":
				s, err := toKeywordString(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("station: sink: %w", err)
				}
				p.SinkPosition = &s
			default:
				field, ok := flags[key]
				if !ok {
					return zygo.SexpNull, fmt.Errorf("station: unknown option :%s", key)
				}
				b, err := toBool(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("station: %s: %w", key, err)
				}
				*field = &b
			}
		}

		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("station: unexpected positional argument %s",
				pa.positional[0].SexpString(nil))
		}

		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (everything) -- switch on every feature and accessory.
	// -----------------------------------------------------------------------
	env.AddFunction("everything", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		on := true
		for _, field := range boolFlags(p) {
			v := on
			*field = &v
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (bare) -- switch off every feature and accessory.
	// -----------------------------------------------------------------------
	env.AddFunction("bare", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		for _, field := range boolFlags(p) {
			v := false
			*field = &v
		}
		return zygo.SexpNull, nil
	})
}
