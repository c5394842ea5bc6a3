// Package formats renders saved answers for display: thousands separators,
// price ranges with units and intervals, and human readable dates.
package formats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// ErrPriceRequired is returned when neither a minimum nor a maximum price
	// is available.
	ErrPriceRequired = errors.New("formats: one of min price or max price is required")
	// ErrNotANumber is returned by CommaFormat for values that are not numeric.
	ErrNotANumber = errors.New("formats: not a number")
)

// Layouts used for date answers. Stored dates are "YYYY-M-D" shaped.
const (
	StoredDateLayout  = "2006-1-2"
	DisplayDateLayout = "Monday 2 January 2006"
)

var printer = message.NewPrinter(language.English)

// CommaFormat adds thousands separators. Integers keep no decimal places,
// other numbers are shown with two. Strings are parsed as an integer first,
// then as a float.
func CommaFormat(number any) (string, error) {
	switch n := number.(type) {
	case int:
		return printer.Sprintf("%d", n), nil
	case int32:
		return printer.Sprintf("%d", n), nil
	case int64:
		return printer.Sprintf("%d", n), nil
	case float32:
		return formatFloat(float64(n))
	case float64:
		return formatFloat(n)
	case string:
		trimmed := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return printer.Sprintf("%d", i), nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrNotANumber, n)
		}
		return formatFloat(f)
	default:
		return "", fmt.Errorf("%w: %v", ErrNotANumber, number)
	}
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %v", ErrNotANumber, f)
	}
	return printer.Sprintf("%.2f", f), nil
}

// PriceParts holds the inputs of FormatPrice. Nil and empty values are
// treated as absent.
type PriceParts struct {
	Min           any
	Max           any
	Unit          string
	Interval      string
	HoursForPrice string
}

// FormatPrice renders a price such as "£12 to £13 a unit a second".
// Values that cannot be read as numbers are shown as given.
func FormatPrice(parts PriceParts) (string, error) {
	minPrice := priceText(parts.Min)
	maxPrice := priceText(parts.Max)

	if minPrice == "" && maxPrice == "" {
		return "", ErrPriceRequired
	}

	if parts.HoursForPrice != "" {
		price := minPrice
		if price == "" {
			price = maxPrice
		}
		return fmt.Sprintf("%s for £%s", parts.HoursForPrice, price), nil
	}

	var b strings.Builder
	if minPrice != "" {
		b.WriteString("£" + minPrice)
	}
	if minPrice != "" && maxPrice != "" {
		b.WriteString(" to ")
	}
	if maxPrice != "" {
		b.WriteString("£" + maxPrice)
	}
	if parts.Unit != "" {
		b.WriteString(withArticle(strings.ToLower(parts.Unit)))
	}
	if parts.Interval != "" {
		b.WriteString(withArticle(strings.ToLower(parts.Interval)))
	}
	return b.String(), nil
}

func priceText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		if v == "" {
			return ""
		}
	}
	formatted, err := CommaFormat(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return formatted
}

// withArticle guesses between "a" and "an". Words starting with a vowel other
// than "u" take "an", as does "hour".
func withArticle(name string) string {
	for _, prefix := range []string{"a", "e", "i", "o", "hour"} {
		if strings.HasPrefix(name, prefix) {
			return " an " + name
		}
	}
	return " a " + name
}

// FormatServicePrice formats the priceMin/priceMax/priceUnit/priceInterval
// keys of a service record. Services without priceMin format as "".
func FormatServicePrice(service map[string]any) (string, error) {
	if !truthy(service["priceMin"]) {
		return "", nil
	}
	return FormatPrice(PriceParts{
		Min:      service["priceMin"],
		Max:      service["priceMax"],
		Unit:     stringValue(service["priceUnit"]),
		Interval: stringValue(service["priceInterval"]),
	})
}

// FormatDate renders a stored "YYYY-M-D" date as "Monday 2 January 2006".
// Values that do not parse are returned unchanged.
func FormatDate(value string) string {
	parsed, err := time.Parse(StoredDateLayout, value)
	if err != nil {
		return value
	}
	return parsed.Format(DisplayDateLayout)
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

func stringValue(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
