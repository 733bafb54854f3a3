package types

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ProfileUpdateRequest carries the text fields of a multipart profile
// update. File parts are handled separately by the upload storage.
type ProfileUpdateRequest struct {
	DisabilityType            string `validate:"omitempty,oneof=Physical Visual Hearing Cognitive Intellectual Psychosocial Multiple Other"`
	DisabilitySeverity        string `validate:"omitempty,oneof=Mild Moderate Severe Profound"`
	DisabilityDescription     string
	NeedsAccommodation        bool
	AccommodationRequirements []string
	ProfessionType            string `validate:"omitempty,oneof='Engineering/Technical' 'Creative/Arts' Administrative Service Healthcare Education 'Skilled Trade' Other"`
	Skills                    []string
	ExperienceLevel           string `validate:"omitempty,oneof=Entry Intermediate Experienced Expert"`
	EducationLevel            string `validate:"omitempty,oneof='No Formal Education' Primary Secondary Diploma Bachelor Master Doctorate Other"`
	PreferredContactMethods   []string `validate:"dive,oneof=Email Phone 'Video Call' Text 'In Person'"`
	RequiresSignLanguage      bool
	RequiresCaptioning        bool
	RequiresAltText           bool
}

// ProfileUpdateFromForm decodes the text portion of a multipart profile
// update. Array fields accept either repeated form values or a single
// JSON-encoded array, matching what the web client sends.
func ProfileUpdateFromForm(form url.Values) *ProfileUpdateRequest {
	return &ProfileUpdateRequest{
		DisabilityType:            form.Get("disabilityType"),
		DisabilitySeverity:        form.Get("disabilitySeverity"),
		DisabilityDescription:     form.Get("disabilityDescription"),
		NeedsAccommodation:        formBool(form, "needsAccommodation"),
		AccommodationRequirements: formStrings(form, "accommodationRequirements"),
		ProfessionType:            form.Get("professionType"),
		Skills:                    formStrings(form, "skills"),
		ExperienceLevel:           form.Get("experienceLevel"),
		EducationLevel:            form.Get("educationLevel"),
		PreferredContactMethods:   formStrings(form, "preferredContactMethods"),
		RequiresSignLanguage:      formBool(form, "requiresSignLanguage"),
		RequiresCaptioning:        formBool(form, "requiresCaptioning"),
		RequiresAltText:           formBool(form, "requiresAltText"),
	}
}

// Validate validates the ProfileUpdateRequest using the validator.
func (r *ProfileUpdateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

func formBool(form url.Values, key string) bool {
	return form.Get(key) == "true"
}

func formStrings(form url.Values, key string) []string {
	values := form[key]
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var decoded []string
		if err := json.Unmarshal([]byte(values[0]), &decoded); err == nil {
			return decoded
		}
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
