package entity

// Fighter holds the combat stats of an actor.
type Fighter struct {
	HP      int
	MaxHP   int
	Defense int
	Power   int
}

// TakeDamage reduces HP, never below zero, and returns the damage actually taken.
func (f *Fighter) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, f.HP)
	f.HP -= actual
	return actual
}
