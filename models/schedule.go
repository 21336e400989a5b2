package models

import (
	"time"

	"gorm.io/gorm"
)

// Schedule is a planned operation. DoctorName and PatientName are copied
// from the referenced records at write time; they are a display snapshot
// and go stale if the doctor or patient is later renamed.
type Schedule struct {
	gorm.Model
	PatientID         uint      `json:"patient_id"`
	PatientName       string    `json:"patient_name"`
	DoctorID          uint      `json:"doctor_id"`
	DoctorName        string    `json:"doctor_name"`
	OperationType     string    `json:"operation_type"`
	OperationDateTime time.Time `json:"operation_date_time"`
	Notes             string    `json:"notes"`
}
