package sheetsync

import (
	"strconv"
	"strings"
	"time"

	"github.com/tenuestore/tenue-backend/pkg/db/models"
)

const (
	rowDateLayout    = "02-01-2006 15:04"
	pricePlaceholder = "0"
	remarksSeparator = " | "
)

// BuildRow renders the fixed ten-column spreadsheet layout. at is the time
// printed in the first column, shown in loc.
func BuildRow(order models.Order, at time.Time, loc *time.Location) []string {
	if loc == nil {
		loc = time.UTC
	}
	return []string{
		at.In(loc).Format(rowDateLayout),
		order.CustomerName,
		NormalizePhone(order.Phone),
		wilayaLabel(order),
		order.City,
		order.City,
		productDescriptor(order),
		strconv.Itoa(order.Quantity),
		// total price column is not computed yet
		pricePlaceholder,
		remarks(order),
	}
}

// NormalizePhone strips whitespace and the Algerian country code, then makes
// sure the number starts with a 0.
func NormalizePhone(raw string) string {
	phone := strings.Join(strings.Fields(raw), "")
	switch {
	case strings.HasPrefix(phone, "+213"):
		phone = strings.TrimPrefix(phone, "+213")
	case strings.HasPrefix(phone, "00213"):
		phone = strings.TrimPrefix(phone, "00213")
	}
	if phone == "" || strings.HasPrefix(phone, "0") {
		return phone
	}
	return "0" + phone
}

func wilayaLabel(order models.Order) string {
	if order.WilayaName != nil && strings.TrimSpace(*order.WilayaName) != "" {
		return *order.WilayaName
	}
	return order.WilayaCode
}

func productDescriptor(order models.Order) string {
	var b strings.Builder
	b.WriteString(order.ProductName)
	if order.Color != nil && *order.Color != "" {
		b.WriteString(" (" + *order.Color + ")")
	}
	if order.Size != nil && *order.Size != "" {
		b.WriteString(" - " + *order.Size)
	}
	return b.String()
}

func remarks(order models.Order) string {
	parts := make([]string, 0, 2)
	if place := string(order.DeliveryPlace); place != "" {
		parts = append(parts, place)
	}
	if source := strings.TrimSpace(order.Source); source != "" {
		parts = append(parts, source)
	}
	return strings.Join(parts, remarksSeparator)
}
