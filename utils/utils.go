package utils

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 12

var ErrInvalidHexColor = errors.New("color must be #rgb or #rrggbb")

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func IsValidHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

type HSL struct {
	H, S, L int
}

// CSSVar форматирует цвет для CSS-переменной вида "215 28% 17%".
func (c HSL) CSSVar() string {
	return fmt.Sprintf("%d %d%% %d%%", c.H, c.S, c.L)
}

// HexToHSL converts #rgb or #rrggbb to hue in degrees and saturation and
// lightness in percent, each rounded to an integer.
func HexToHSL(hex string) (HSL, error) {
	if !IsValidHexColor(hex) {
		return HSL{}, fmt.Errorf("%w: %q", ErrInvalidHexColor, hex)
	}
	digits := hex[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	v, _ := strconv.ParseUint(digits, 16, 32)
	r := float64((v>>16)&0xFF) / 255
	g := float64((v>>8)&0xFF) / 255
	b := float64(v&0xFF) / 255

	maxC, minC := math.Max(r, math.Max(g, b)), math.Min(r, math.Min(g, b))
	var h, s float64
	l := (maxC + minC) / 2

	if maxC != minC {
		d := maxC - minC
		if l > 0.5 {
			s = d / (2 - maxC - minC)
		} else {
			s = d / (maxC + minC)
		}
		switch maxC {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return HSL{
		H: int(math.Round(h * 360)),
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}, nil
}

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of characters other than
// a-z and 0-9 into a single dash.
func Slugify(s string) string {
	return strings.Trim(nonSlugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// IsHTTPURL reports whether raw is an absolute http or https URL.
func IsHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
