package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Field keys under which validation errors are reported. The coordinate pair
// is reported as a single "location" field.
const (
	FieldName          = "name"
	FieldDescription   = "description"
	FieldAccessibility = "accessibility"
	FieldAddress       = "address"
	FieldBestTimes     = "bestTimes"
	FieldTags          = "tags"
	FieldLocation      = "location"
	FieldImages        = "images"
)

// RawSubmission holds the submitted form values exactly as received. List
// fields arrive delimiter-joined, images and geometry as JSON strings.
type RawSubmission struct {
	Name            string `json:"spot_name" form:"spot_name"`
	Description     string `json:"spot_description" form:"spot_description"`
	Accessibility   string `json:"spot_accessibility" form:"spot_accessibility"`
	BestTimes       string `json:"spot_best_times" form:"spot_best_times"`
	Tags            string `json:"spot_tags" form:"spot_tags"`
	Images          string `json:"spot_images" form:"spot_images"`
	Address         string `json:"spot_address" form:"spot_address"`
	Longitude       string `json:"spot_longitude" form:"spot_longitude"`
	Latitude        string `json:"spot_latitude" form:"spot_latitude"`
	Geometry        string `json:"geometry_save" form:"geometry_save"`
	DiscardedImages string `json:"spot_discarded_images" form:"spot_discarded_images"`
}

// ImageRef identifies an asset already uploaded to the external image store.
type ImageRef struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url,omitempty"`
}

// Submission carries the normalized values of an accepted submission.
type Submission struct {
	Name          string
	Description   string
	Accessibility string
	Address       string
	BestTimes     []string
	Tags          []string
	Images        []ImageRef
	Longitude     float64
	Latitude      float64
	Geometry      string
}

// Result accumulates normalized values and per-field error messages. A
// submission is accepted iff Errors is empty.
type Result struct {
	Values Submission
	Errors map[string][]string
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

// ImagesParsed reports whether the images field itself deserialized and
// passed its length checks. The asset reconciler only releases uploads it
// actually knows about.
func (r Result) ImagesParsed() bool {
	_, bad := r.Errors[FieldImages]
	return !bad
}

// StringRule names a required free-text field and the message reported when
// it is absent or blank after trimming.
type StringRule struct {
	Field   string
	Message string
}

// DefaultStringRules covers the four required free-text fields of a spot.
var DefaultStringRules = []StringRule{
	{FieldName, "Spot name must not be blank or just spaces!"},
	{FieldDescription, "Spot description must not be blank or just spaces!"},
	{FieldAccessibility, "Spot accessibility must not be blank or just spaces!"},
	{FieldAddress, "Spot address must not be blank or just spaces!"},
}

// Validator checks every field of a submission independently, so one bad
// field never hides errors in another. The rule table and limits are plain
// fields so tests can tighten or relax them.
type Validator struct {
	StringRules []StringRule
	MaxTags     int
	MinImages   int
	MaxImages   int
	ListSep     string
}

func New() *Validator {
	return &Validator{
		StringRules: DefaultStringRules,
		MaxTags:     5,
		MinImages:   1,
		MaxImages:   3,
		ListSep:     ",",
	}
}

// ValidateSubmission evaluates every field exactly once and accumulates all
// failures. It never short-circuits.
func (v *Validator) ValidateSubmission(raw RawSubmission) Result {
	res := Result{Errors: make(map[string][]string)}

	for _, rule := range v.StringRules {
		val, ok := requireTrimmed(rawField(raw, rule.Field))
		if !ok {
			res.Errors[rule.Field] = []string{rule.Message}
			continue
		}
		setField(&res.Values, rule.Field, val)
	}

	v.validateBestTimes(raw.BestTimes, &res)
	v.validateTags(raw.Tags, &res)
	v.validateLocation(raw.Longitude, raw.Latitude, &res)
	v.validateImages(raw.Images, &res)

	// Opportunistic geometry normalization. A payload that does not
	// re-serialize is dropped without contributing a field error.
	if raw.Geometry != "" {
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(raw.Geometry)); err == nil {
			res.Values.Geometry = buf.String()
		}
	}

	return res
}

func (v *Validator) validateBestTimes(raw string, res *Result) {
	if strings.TrimSpace(raw) == "" {
		res.Errors[FieldBestTimes] = []string{"Must provide at least one best time for the spot!"}
		return
	}

	parts := strings.Split(raw, v.ListSep)
	times := make([]string, 0, len(parts))
	var errs []string
	for _, p := range parts {
		t, ok := requireTrimmed(p)
		if !ok {
			errs = append(errs, fmt.Sprintf("Invalid best time: %q. A best time cannot be blank or just spaces.", p))
			continue
		}
		times = append(times, t)
	}
	if len(errs) > 0 {
		res.Errors[FieldBestTimes] = errs
		return
	}
	res.Values.BestTimes = times
}

func (v *Validator) validateTags(raw string, res *Result) {
	// Tags are optional; a blank value is an empty tag list, not an error.
	if strings.TrimSpace(raw) == "" {
		res.Values.Tags = []string{}
		return
	}

	parts := strings.Split(raw, v.ListSep)
	tags := make([]string, 0, len(parts))
	var errs []string
	for _, p := range parts {
		t, ok := requireTrimmed(p)
		if !ok {
			errs = append(errs, fmt.Sprintf("Invalid tag: %q. A tag cannot be blank or just spaces.", p))
			continue
		}
		tags = append(tags, t)
	}
	if len(parts) > v.MaxTags {
		errs = append(errs, fmt.Sprintf("A maximum of %d tags is allowed!", v.MaxTags))
	}
	// All or nothing: a partially valid tag list is never accepted.
	if len(errs) > 0 {
		res.Errors[FieldTags] = errs
		return
	}
	res.Values.Tags = tags
}

func (v *Validator) validateLocation(rawLon, rawLat string, res *Result) {
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(rawLon), 64)
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(rawLat), 64)
	if lonErr != nil || latErr != nil || lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		res.Errors[FieldLocation] = []string{"Please use the map to select the location!"}
		return
	}
	res.Values.Longitude = lon
	res.Values.Latitude = lat
}

func (v *Validator) validateImages(raw string, res *Result) {
	refs, errs := v.ValidateImages(raw)
	if len(errs) > 0 {
		res.Errors[FieldImages] = errs
		return
	}
	res.Values.Images = refs
}

// ValidateImages deserializes a JSON array of asset references and enforces
// the configured count bounds.
func (v *Validator) ValidateImages(raw string) ([]ImageRef, []string) {
	var refs []ImageRef
	if err := json.Unmarshal([]byte(raw), &refs); err != nil || len(refs) < v.MinImages {
		return nil, []string{"Please upload at least one image!"}
	}
	if len(refs) > v.MaxImages {
		return nil, []string{fmt.Sprintf("Please upload a maximum of %d images!", v.MaxImages)}
	}
	return refs, nil
}

// ParseDiscarded decodes the list of asset IDs the submitter removed while
// editing. The list is advisory, so a malformed payload yields nothing.
func ParseDiscarded(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	out := ids[:0]
	for _, id := range ids {
		if strings.TrimSpace(id) != "" {
			out = append(out, id)
		}
	}
	return out
}

// ValidateString trims a required free-text value, rejecting blank input.
func ValidateString(raw string) (string, error) {
	trimmed, ok := requireTrimmed(raw)
	if !ok {
		return "", fmt.Errorf("string is empty or has only spaces")
	}
	return trimmed, nil
}

// ValidateID trims and parses an opaque content identifier.
func ValidateID(raw string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return uuid.Nil, fmt.Errorf("content ID is empty or has only spaces")
	}
	id, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, fmt.Errorf("string (%s) is not a valid content ID", trimmed)
	}
	return id, nil
}

func requireTrimmed(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

func rawField(raw RawSubmission, field string) string {
	switch field {
	case FieldName:
		return raw.Name
	case FieldDescription:
		return raw.Description
	case FieldAccessibility:
		return raw.Accessibility
	case FieldAddress:
		return raw.Address
	}
	return ""
}

func setField(sub *Submission, field, val string) {
	switch field {
	case FieldName:
		sub.Name = val
	case FieldDescription:
		sub.Description = val
	case FieldAccessibility:
		sub.Accessibility = val
	case FieldAddress:
		sub.Address = val
	}
}
