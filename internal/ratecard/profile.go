package ratecard

// Defaults used when the request profile does not supply a value
const (
	DefaultUsername = "demo"
	DefaultIndustry = "Professional Services"
	DefaultBio      = "Visit my rate card for professional services and pricing information."
)

// ProfileOverrides holds the optional profile values of a request.
// A nil field was absent (or null) and falls back to its default; an empty string is kept as is.
type ProfileOverrides struct {
	Username *string
	Name     *string
	Industry *string
	Bio      *string
}

func parseProfile(v any) ProfileOverrides {
	fields, ok := v.(map[string]any)
	if !ok {
		return ProfileOverrides{}
	}

	return ProfileOverrides{
		Username: optionalField(fields, "username"),
		Name:     optionalField(fields, "name"),
		Industry: optionalField(fields, "industry"),
		Bio:      optionalField(fields, "bio"),
	}
}

func optionalField(fields map[string]any, key string) *string {
	s, ok := optionalString(fields[key])
	if !ok {
		return nil
	}
	return &s
}

// UsernameOrDefault returns the profile username or DefaultUsername
func (p ProfileOverrides) UsernameOrDefault() string {
	return valueOr(p.Username, DefaultUsername)
}

// NameOr returns the profile display name or fallback (the request's top level name)
func (p ProfileOverrides) NameOr(fallback string) string {
	return valueOr(p.Name, fallback)
}

// IndustryOrDefault returns the profile industry or DefaultIndustry
func (p ProfileOverrides) IndustryOrDefault() string {
	return valueOr(p.Industry, DefaultIndustry)
}

// BioOrDefault returns the profile bio or DefaultBio
func (p ProfileOverrides) BioOrDefault() string {
	return valueOr(p.Bio, DefaultBio)
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
