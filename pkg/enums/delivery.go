package enums

import "fmt"

// DeliveryPlace is where the courier drops the parcel: the customer's home or
// the carrier's office ("desktop" in the storefront's vocabulary).
type DeliveryPlace string

const (
	DeliveryPlaceHome    DeliveryPlace = "home"
	DeliveryPlaceDesktop DeliveryPlace = "desktop"
)

func (d DeliveryPlace) String() string {
	return string(d)
}

func (d DeliveryPlace) IsValid() bool {
	return d == DeliveryPlaceHome || d == DeliveryPlaceDesktop
}

func ParseDeliveryPlace(value string) (DeliveryPlace, error) {
	d := DeliveryPlace(value)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid delivery place %q", value)
	}
	return d, nil
}

// Language is the storefront locale the customer ordered in.
type Language string

const (
	LanguageArabic Language = "ar"
	LanguageFrench Language = "fr"
)

func (l Language) String() string {
	return string(l)
}

func (l Language) IsValid() bool {
	return l == LanguageArabic || l == LanguageFrench
}

func ParseLanguage(value string) (Language, error) {
	l := Language(value)
	if !l.IsValid() {
		return "", fmt.Errorf("invalid language %q", value)
	}
	return l, nil
}
