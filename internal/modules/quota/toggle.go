package quota

type ToggleOutcome string

const (
	Saved   ToggleOutcome = "saved"
	Unsaved ToggleOutcome = "unsaved"
	Denied  ToggleOutcome = "denied"
)

// DecideToggle resolves a bookmark toggle. An existing entry is always removed, with
// no quota involved; otherwise the quota decision gates the create.
func DecideToggle(exists bool, d Decision) ToggleOutcome {
	if exists {
		return Unsaved
	}
	if !d.Allowed {
		return Denied
	}
	return Saved
}

func (o ToggleOutcome) IsSaved() bool { return o == Saved }
