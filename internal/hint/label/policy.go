package label

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Configuration errors.
var (
	// ErrEmptyAlphabet indicates the alphabet has no runes.
	ErrEmptyAlphabet = errors.New("label alphabet is empty")

	// ErrDuplicateRune indicates the alphabet repeats a rune (ignoring case).
	ErrDuplicateRune = errors.New("label alphabet repeats a character")

	// ErrInvalidRune indicates the alphabet contains a space or non-printable rune.
	ErrInvalidRune = errors.New("label alphabet contains an unusable character")

	// ErrInvalidLength indicates a fixed policy with a length below one.
	ErrInvalidLength = errors.New("fixed label length must be at least 1")

	// ErrUnknownKind indicates an unrecognized policy name.
	ErrUnknownKind = errors.New("unknown label length policy")
)

// Kind selects the label length policy.
type Kind uint8

const (
	// KindVariable produces a prefix-free code of mixed lengths.
	KindVariable Kind = iota

	// KindFixed produces labels of one configured length.
	KindFixed
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// ParseKind parses "variable" or "fixed".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "variable":
		return KindVariable, nil
	case "fixed":
		return KindFixed, nil
	default:
		return KindVariable, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Policy is the hint-length policy: Fixed(Length) or Variable.
type Policy struct {
	Kind   Kind
	Length int // used by KindFixed only
}

// VariablePolicy returns the variable-length policy.
func VariablePolicy() Policy {
	return Policy{Kind: KindVariable}
}

// FixedPolicy returns a fixed-length policy.
func FixedPolicy(length int) Policy {
	return Policy{Kind: KindFixed, Length: length}
}

// Validate reports whether the policy can produce labels.
func (p Policy) Validate() error {
	switch p.Kind {
	case KindVariable:
		return nil
	case KindFixed:
		if p.Length < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidLength, p.Length)
		}
		return nil
	default:
		return ErrUnknownKind
	}
}

// String returns a readable form such as "fixed(2)".
func (p Policy) String() string {
	if p.Kind == KindFixed {
		return fmt.Sprintf("fixed(%d)", p.Length)
	}
	return p.Kind.String()
}

// ParseAlphabet converts a configured alphabet string into runes.
func ParseAlphabet(s string) ([]rune, error) {
	runes := []rune(s)
	if err := ValidateAlphabet(runes); err != nil {
		return nil, err
	}
	return runes, nil
}

// ValidateAlphabet checks that the alphabet is non-empty, printable and free
// of duplicates when compared case-insensitively.
func ValidateAlphabet(alphabet []rune) error {
	if len(alphabet) == 0 {
		return ErrEmptyAlphabet
	}
	seen := make(map[rune]struct{}, len(alphabet))
	for _, r := range alphabet {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return fmt.Errorf("%w: %q", ErrInvalidRune, r)
		}
		folded := foldKey(r)
		if _, ok := seen[folded]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateRune, r)
		}
		seen[folded] = struct{}{}
	}
	return nil
}
