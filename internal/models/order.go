package models

import (
	"time"

	"fjacquet/pdf-order/internal/dateutils"
)

// OrderHeader is the metadata block of an order. Create it with NewOrderHeader;
// it is not modified afterwards.
type OrderHeader struct {
	CustomerCode string
	OrderDate    time.Time
	DeliveryDate time.Time
}

// NewOrderHeader builds the header of an order computed on orderDate, with
// delivery deliveryDays calendar days later.
func NewOrderHeader(customerCode string, orderDate time.Time, deliveryDays int) OrderHeader {
	day := dateutils.TruncateToDay(orderDate)
	return OrderHeader{
		CustomerCode: customerCode,
		OrderDate:    day,
		DeliveryDate: dateutils.AddDays(day, deliveryDays),
	}
}

// Lines serializes the header into its seven fixed lines.
func (h OrderHeader) Lines() []string {
	return []string{
		RecordTypeHeader,
		FieldOrderMarker + OrderMarker,
		FieldCustomer + h.CustomerCode,
		FieldBlank,
		FieldOrderType + OrderTypeGeneral,
		FieldOrderDate + dateutils.ToISODate(h.OrderDate),
		FieldDeliveryDate + dateutils.ToISODate(h.DeliveryDate),
	}
}

// OrderLine is one ordered article.
type OrderLine struct {
	Article  string `csv:"article" yaml:"article"`
	Quantity string `csv:"quantity" yaml:"quantity"`
}

// Lines serializes the order line into its three-line block.
func (l OrderLine) Lines() []string {
	return []string{
		RecordTypeLine,
		FieldArticle + l.Article,
		FieldQuantity + l.Quantity,
	}
}
