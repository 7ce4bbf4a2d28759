package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"frontline/internal/domain"
)

// replaceRequiredFields must all be present as keys in a full update body.
var replaceRequiredFields = []string{
	"areticalNo",
	"name",
	"date",
	"warpDetails",
	"weftDetails",
	"dyingMillName",
	"fabricsShortage",
	"code",
}

// CreateFormRequest is the body of a new submission. Rates are not accepted
// here; they are set later through UpdateRatesRequest.
type CreateFormRequest struct {
	AreticalNo      Text    `json:"areticalNo" validate:"required"`
	Name            Text    `json:"name" validate:"required"`
	Date            Text    `json:"date" validate:"required"`
	WarpDetails     Details `json:"warpDetails" validate:"required"`
	WeftDetails     Details `json:"weftDetails" validate:"required"`
	DyingMillName   Text    `json:"dyingMillName"`
	FabricsShortage Text    `json:"fabricsShortage"`
}

// ReplaceFormRequest is the body of a full update. It remembers which keys
// were sent so that a field explicitly set to a falsy value is not reported
// as missing. Client supplied ids and rates are dropped.
type ReplaceFormRequest struct {
	AreticalNo      Text    `json:"areticalNo"`
	Name            Text    `json:"name"`
	Date            Text    `json:"date"`
	WarpDetails     Details `json:"warpDetails"`
	WeftDetails     Details `json:"weftDetails"`
	DyingMillName   Text    `json:"dyingMillName"`
	FabricsShortage Text    `json:"fabricsShortage"`
	Code            Text    `json:"code"`

	present map[string]bool
}

func (r *ReplaceFormRequest) UnmarshalJSON(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	type plain ReplaceFormRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*r = ReplaceFormRequest(p)
	r.present = make(map[string]bool, len(keys))
	for k := range keys {
		r.present[k] = true
	}
	return nil
}

// MissingFields lists the required keys absent from the body, in a fixed order.
func (r *ReplaceFormRequest) MissingFields() []string {
	var missing []string
	for _, field := range replaceRequiredFields {
		if !r.present[field] {
			missing = append(missing, field)
		}
	}
	return missing
}

func (r *ReplaceFormRequest) replacement() domain.FormReplacement {
	return domain.FormReplacement{
		AreticalNo:      string(r.AreticalNo),
		Name:            string(r.Name),
		Date:            string(r.Date),
		WarpDetails:     r.WarpDetails,
		WeftDetails:     r.WeftDetails,
		DyingMillName:   string(r.DyingMillName),
		FabricsShortage: string(r.FabricsShortage),
		Code:            string(r.Code),
	}
}

// UpdateRatesRequest is the body of the rate-only update. A rate sent as null
// is cleared; a rate left out is untouched.
type UpdateRatesRequest struct {
	WarpRate NullableText `json:"warpRate"`
	WeftRate NullableText `json:"weftRate"`
}

func (r UpdateRatesRequest) update() domain.RatesUpdate {
	return domain.RatesUpdate{
		WarpRate:    r.WarpRate.Value,
		WeftRate:    r.WeftRate.Value,
		SetWarpRate: r.WarpRate.Set,
		SetWeftRate: r.WeftRate.Set,
	}
}

// Text is a text field that also accepts a bare JSON number or boolean,
// kept as its literal text. null decodes as the empty string.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return errors.New("empty text value")
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*t = Text(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected text, got %s", data)
		}
		*t = Text(n.String())
	}
	return nil
}

// NullableText is an optional Text that tells an absent key apart from an
// explicit null.
type NullableText struct {
	Set   bool
	Value *string
}

func (n *NullableText) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}

	var t Text
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	s := string(t)
	n.Value = &s
	return nil
}

// Details is a list of line items. A single value that is not a list is
// wrapped in a one element list; null leaves it nil.
type Details []any

func (d *Details) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch items := v.(type) {
	case nil:
		*d = nil
	case []any:
		*d = items
	default:
		*d = Details{items}
	}
	return nil
}

// FormPage is one page of the form listing.
type FormPage struct {
	Forms      []domain.Form `json:"forms"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}
