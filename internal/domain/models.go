package domain

// Models lists every table managed by AutoMigrate, parents first.
func Models() []any {
	return []any{
		&User{},
		&UserToken{},
		&AssessmentRecord{},
		&Recommendation{},
		&SavedResource{},
		&WaitlistEntry{},
	}
}
