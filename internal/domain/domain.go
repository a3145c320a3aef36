// Package domain holds the persisted CareerPath models: users and their sessions,
// assessments with their recommendations, saved resources and the waitlist.
package domain
