package questions

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/goliatone/go-formcontent/pkg/formats"
	"github.com/goliatone/go-formcontent/pkg/formdata"
)

// Roles a pricing question can map to form fields.
const (
	PriceField         = "price"
	MinimumPriceField  = "minimum_price"
	MaximumPriceField  = "maximum_price"
	PriceUnitField     = "price_unit"
	PriceIntervalField = "price_interval"
	HoursForPriceField = "hours_for_price"
)

var (
	trailingPoint  = regexp.MustCompile(`^\d+\.$`)
	singleDecimal  = regexp.MustCompile(`^\d+\.\d$`)
	restrictedRole = map[string]struct{}{
		PriceField:        {},
		MinimumPriceField: {},
		MaximumPriceField: {},
	}
)

// pricingBehavior reads the form fields named by the schema's fields map,
// keyed by role.
type pricingBehavior struct{ baseBehavior }

func (pricingBehavior) validate(schema *Schema) error {
	if len(schema.Fields) == 0 {
		return fmt.Errorf("%w: pricing question %q has no fields", ErrInvalidSchema, schema.ID)
	}
	return nil
}

func (pricingBehavior) parse(q *Question, form formdata.Values) (Data, error) {
	data := Data{}
	for role, field := range q.schema.Fields {
		value, ok := form.Get(field)
		if !ok {
			continue
		}
		if value == "" {
			data[field] = nil
			continue
		}
		if _, restricted := restrictedRole[role]; restricted && q.schema.DecimalPlaceRestriction {
			value = completeDecimals(value)
		}
		data[field] = value
	}
	return data, nil
}

// completeDecimals pads "12." to "12.00" and "12.3" to "12.30".
func completeDecimals(value string) string {
	switch {
	case trailingPoint.MatchString(value):
		return value + "00"
	case singleDecimal.MatchString(value):
		return value + "0"
	default:
		return value
	}
}

func (pricingBehavior) formFields(q *Question) []string {
	fields := make([]string, 0, len(q.schema.Fields))
	for _, field := range q.schema.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (pricingBehavior) optionalFields(q *Question) []string {
	if q.IsOptional() {
		return q.FormFields()
	}
	var out []string
	for _, role := range q.schema.OptionalFields {
		if field, ok := q.schema.Fields[role]; ok {
			out = append(out, field)
		}
	}
	return out
}

func (pricingBehavior) lookup(q *Question, fieldID string) *Question {
	if q.ID() == fieldID {
		return q
	}
	for _, field := range q.schema.Fields {
		if field == fieldID {
			return q
		}
	}
	return nil
}

// value formats the saved price. A price or minimum price is required;
// field_defaults fill in a missing unit, interval or hours.
func (pricingBehavior) value(s *Summary, _ bool) any {
	price := s.pricingField(PriceField, false)
	minimum := s.pricingField(MinimumPriceField, false)
	maximum := s.pricingField(MaximumPriceField, false)

	lower := price
	if !truthy(lower) {
		lower = minimum
	}
	if !truthy(lower) {
		return ""
	}

	formatted, err := formats.FormatPrice(formats.PriceParts{
		Min:           lower,
		Max:           maximum,
		Unit:          displayString(s.pricingField(PriceUnitField, true)),
		Interval:      displayString(s.pricingField(PriceIntervalField, true)),
		HoursForPrice: displayString(s.pricingField(HoursForPriceField, true)),
	})
	if err != nil {
		return ""
	}
	return formatted
}

// pricingField reads the saved value for role, falling back to the
// field_defaults entry when allowed.
func (s *Summary) pricingField(role string, useDefault bool) any {
	if field, ok := s.schema.Fields[role]; ok {
		if value, present := s.data[field]; present {
			return value
		}
	}
	if useDefault {
		return s.schema.FieldDefaults[role]
	}
	return nil
}
