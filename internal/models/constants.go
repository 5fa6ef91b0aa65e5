package models

// Record type codes of the business-system order file
const (
	RecordTypeHeader = "01"
	RecordTypeLine   = "11"
)

// Field codes. Each serialized value is prefixed with its code.
const (
	FieldOrderMarker  = "#12211;"
	FieldCustomer     = "#12205;"
	FieldBlank        = "#12225;"
	FieldOrderType    = "#12213;"
	FieldOrderDate    = "#12312;"
	FieldDeliveryDate = "#12313;"
	FieldArticle      = "#12401;"
	FieldQuantity     = "#12441;"
)

// Serialized block sizes
const (
	OrderHeaderFields = 7
	OrderLineFields   = 3
)

// Constant header values
const (
	OrderMarker      = "O"
	OrderTypeGeneral = "GN"
)

// Defaults of the supported customer
const (
	DefaultCustomerCode = "1112L"
	DefaultDeliveryDays = 10
)

// File permissions
const (
	PermissionDirectory = 0750
	PermissionOrderFile = 0644
)
