package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/opscheduler/opscheduler-api/db"
	"github.com/opscheduler/opscheduler-api/models"
	"github.com/opscheduler/opscheduler-api/utils"
	"github.com/robfig/cron/v3"
)

// StartCronJobs initializes and starts the cron scheduler for operation reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for operations in the next hour
	_, err := c.AddFunc("* * * * *", sendOperationReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for operation reminders")
}

// sendMail is swapped out in tests.
var sendMail = utils.SendEmail

// reminderWindow brackets operations starting about an hour from now. The
// job runs every minute, so the ten minute width guarantees each operation
// falls inside the window on several consecutive runs.
func reminderWindow(now time.Time) (time.Time, time.Time) {
	return now.Add(55 * time.Minute), now.Add(65 * time.Minute)
}

// sendOperationReminders checks for upcoming operations and sends reminders
func sendOperationReminders() {
	var schedules []models.Schedule
	startWindow, endWindow := reminderWindow(time.Now())

	err := db.DB.
		Where("operation_date_time BETWEEN ? AND ?", startWindow, endWindow).
		Find(&schedules).Error
	if err != nil {
		log.Printf("Error fetching schedules for reminders: %v", err)
		return
	}

	for _, schedule := range schedules {
		var patient models.Patient
		if err := db.DB.First(&patient, schedule.PatientID).Error; err != nil {
			log.Printf("Patient %d for schedule %d not found, skipping reminder", schedule.PatientID, schedule.ID)
			continue
		}
		if patient.Email == "" {
			continue
		}

		if err := sendReminderEmail(&schedule, &patient); err != nil {
			log.Printf("Failed to send reminder for schedule %d: %v", schedule.ID, err)
			continue
		}
		log.Printf("Sent reminder for schedule %d to %s", schedule.ID, patient.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(schedule *models.Schedule, patient *models.Patient) error {
	subject := fmt.Sprintf("Reminder: Upcoming Operation - %s", schedule.OperationType)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your operation scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Operation:</strong> %s</li>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Notes:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule, contact the hospital as soon as possible.</p>
		<p>Best regards,</p>
		<p>The Operations Team</p>
	`, patient.Name, schedule.OperationType, schedule.DoctorName,
		schedule.OperationDateTime.Format("2006-01-02 15:04:05"),
		schedule.Notes)

	return sendMail(patient.Email, subject, body)
}
