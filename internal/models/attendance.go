package models

import "time"

// AttendanceStatus enumerates the recognised attendance states.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceExcused AttendanceStatus = "Excused"
)

// Valid reports whether the status is one of the recognised states.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// AttendanceEntry is a single (course, date, student) record. Re-marking the
// same triple overwrites the entry; last write wins.
type AttendanceEntry struct {
	Status   AttendanceStatus `json:"status"`
	MarkedAt time.Time        `json:"marked_at"`
}

// DayAttendance maps student email to that day's entry.
type DayAttendance map[string]AttendanceEntry

// CourseAttendance maps ISO date string to the day's records.
type CourseAttendance map[string]DayAttendance

// AttendanceDocument is the whole attendance document: course ID at the top.
type AttendanceDocument map[string]CourseAttendance

// StudentAttendance is the per-student reshaping of the nested document:
// course ID to date to that student's entry.
type StudentAttendance map[string]map[string]AttendanceEntry
