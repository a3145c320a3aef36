package aggregates

// Contract names an aggregate root and the tables one of its writes may touch.
// Every write listed here commits or rolls back as a unit.
type Contract struct {
	Name   string
	Tables []string
	// Quota is the plan limit checked inside the write, empty when none.
	Quota string
	Notes string
}

// Aggregate is implemented by every aggregate root.
type Aggregate interface {
	Contract() Contract
}

// Writes reports whether table is part of the contract's write set.
func (c Contract) Writes(table string) bool {
	for _, t := range c.Tables {
		if t == table {
			return true
		}
	}
	return false
}

// QuotaChecked reports whether writes are admitted by a plan limit.
func (c Contract) QuotaChecked() bool { return c.Quota != "" }
