package component

// StatMutator is the only write surface of a stat sheet.
type StatMutator interface {
	Heal(amount float64)
	RestoreArmour(amount float64)
	ApplyDamage(amount float64)
}

// HasStatSheet is implemented by anything that trigger effects may target.
type HasStatSheet interface {
	StatSheet() StatMutator
}

// StatSheet holds health and armour. Values are deliberately unbounded:
// health can exceed its starting value and both can go negative.
type StatSheet struct {
	health float64
	armour float64
}

func NewStatSheet(health, armour float64) *StatSheet {
	return &StatSheet{health: health, armour: armour}
}

func (s *StatSheet) Health() float64 {
	if s == nil {
		return 0
	}
	return s.health
}

func (s *StatSheet) Armour() float64 {
	if s == nil {
		return 0
	}
	return s.armour
}

func (s *StatSheet) Heal(amount float64) {
	if s == nil {
		return
	}
	s.health += amount
}

func (s *StatSheet) RestoreArmour(amount float64) {
	if s == nil {
		return
	}
	s.armour += amount
}

// ApplyDamage lowers health and armour by the same amount.
func (s *StatSheet) ApplyDamage(amount float64) {
	if s == nil {
		return
	}
	s.health -= amount
	s.armour -= amount
}

// StatSheet lets the sheet itself satisfy HasStatSheet.
func (s *StatSheet) StatSheet() StatMutator {
	return s
}

var StatSheetComponent = NewComponent[StatSheet]()
