package models

import "time"

// Announcement is one entry in the flat announcements list. The three target
// lists are nullable; all nil means the announcement is a broadcast visible
// to everyone. Targets are stored as given, with no validation that the named
// roles, departments or emails exist.
type Announcement struct {
	AnnouncementID    int       `json:"announcement_id"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	AuthorEmail       string    `json:"author_email"`
	TargetRoles       []string  `json:"target_roles"`
	TargetDepartments []string  `json:"target_departments"`
	TargetEmails      []string  `json:"target_emails"`
	CreatedAt         time.Time `json:"created_at"`
}

// VisibleTo implements audience filtering as an OR across the three target
// dimensions: an announcement is visible when it has no targeting at all, or
// when the viewer's role, department, or email appears in the matching list.
// Callers pass the viewer's full identity context; an empty argument simply
// never matches its dimension.
func (a Announcement) VisibleTo(role, department, email string) bool {
	if len(a.TargetRoles) == 0 && len(a.TargetDepartments) == 0 && len(a.TargetEmails) == 0 {
		return true
	}
	if role != "" && contains(a.TargetRoles, role) {
		return true
	}
	if department != "" && contains(a.TargetDepartments, department) {
		return true
	}
	if email != "" && contains(a.TargetEmails, email) {
		return true
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
