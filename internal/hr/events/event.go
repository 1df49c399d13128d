// Package events publishes HR record changes to Kafka and consumes them
// back for auditing.
package events

import (
	"strconv"

	"github.com/gartstein/hr/internal/hr/models"
)

type EventType string

const (
	EmployeeCreated EventType = "employee_created"
	EmployeeUpdated EventType = "employee_updated"
	EmployeeDeleted EventType = "employee_deleted"
	CompanyCreated  EventType = "company_created"
	CompanyUpdated  EventType = "company_updated"
	CompanyDeleted  EventType = "company_deleted"
)

// Event carries a snapshot of the entity a change applied to. Exactly one
// of Employee and Company is set.
type Event struct {
	Type     EventType        `json:"type"`
	Key      string           `json:"key"`
	Employee *models.Employee `json:"employee,omitempty"`
	Company  *models.Company  `json:"company,omitempty"`
}

func EmployeeEvent(eventType EventType, employee *models.Employee) Event {
	return Event{
		Type:     eventType,
		Key:      "employee-" + strconv.Itoa(employee.ID),
		Employee: employee,
	}
}

func CompanyEvent(eventType EventType, company *models.Company) Event {
	return Event{
		Type:    eventType,
		Key:     "company-" + company.ID.String(),
		Company: company,
	}
}
