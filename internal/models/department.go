package models

import "time"

// Department is the value stored in the departments document, keyed by
// department ID. HODEmail is a soft reference; courses point at departments by
// name, not by ID, which is what the delete guard checks against.
type Department struct {
	Name        string    `json:"name"`
	HODEmail    string    `json:"hod_email"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// DepartmentInfo joins the map key back onto the stored value.
type DepartmentInfo struct {
	DeptID string `json:"dept_id"`
	Department
}
