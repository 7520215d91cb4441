package model

import "time"

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldDate    Field = "date"
	FieldTime    Field = "time"
	FieldService Field = "service"
	FieldMessage Field = "message"
)

// BookingFields lists the draft fields in the order the form renders them.
var BookingFields = []Field{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldDate,
	FieldTime,
	FieldService,
	FieldMessage,
}

func (f Field) IsValid() bool {
	for _, known := range BookingFields {
		if f == known {
			return true
		}
	}
	return false
}

// BookingDraft is the in-progress state of one booking form session.
// Date is YYYY-MM-DD and Time is HH:MM (24h); Time is empty until a slot is picked.
type BookingDraft struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Service string `json:"service"`
	Message string `json:"message"`

	Submitted bool      `json:"submitted,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *BookingDraft) Get(field Field) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldDate:
		return d.Date
	case FieldTime:
		return d.Time
	case FieldService:
		return d.Service
	case FieldMessage:
		return d.Message
	}
	return ""
}

func (d *BookingDraft) Set(field Field, value string) {
	switch field {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldDate:
		d.Date = value
	case FieldTime:
		d.Time = value
	case FieldService:
		d.Service = value
	case FieldMessage:
		d.Message = value
	}
}

// BookingPayload is the body the clinic API expects for a new appointment.
// Message is nil when the visitor left it empty.
type BookingPayload struct {
	Name        string  `json:"name" bson:"name"`
	Email       string  `json:"email" bson:"email"`
	Phone       string  `json:"phone" bson:"phone"`
	ServiceName string  `json:"serviceName" bson:"service_name"`
	Date        string  `json:"date" bson:"date"`
	Time        string  `json:"time" bson:"time"`
	Message     *string `json:"message" bson:"message"`
}

// Appointment is a booking as stored and returned by the clinic API.
type Appointment struct {
	ID          string    `json:"_id,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	ServiceName string    `json:"serviceName"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Message     *string   `json:"message"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
