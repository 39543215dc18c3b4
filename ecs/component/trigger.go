package component

import "fmt"

// EffectKind selects which stat mutation a trigger effect applies.
type EffectKind string

const (
	EffectHeal   EffectKind = "heal"
	EffectArmour EffectKind = "armour"
	EffectDamage EffectKind = "damage"
)

func ParseEffectKind(s string) (EffectKind, error) {
	switch EffectKind(s) {
	case EffectHeal, EffectArmour, EffectDamage:
		return EffectKind(s), nil
	}
	return "", fmt.Errorf("unknown effect kind %q", s)
}

// TriggerEffect is a one-shot stat mutation volume.
type TriggerEffect struct {
	Kind     EffectKind
	Amount   float64
	Consumed bool
}

// Apply mutates target once. It returns false when the effect has already
// fired or the target exposes no stat sheet.
func (t *TriggerEffect) Apply(target HasStatSheet) bool {
	if t == nil || t.Consumed || target == nil {
		return false
	}
	sheet := target.StatSheet()
	if sheet == nil {
		return false
	}
	switch t.Kind {
	case EffectHeal:
		sheet.Heal(t.Amount)
	case EffectArmour:
		sheet.RestoreArmour(t.Amount)
	case EffectDamage:
		sheet.ApplyDamage(t.Amount)
	default:
		return false
	}
	t.Consumed = true
	return true
}

var TriggerEffectComponent = NewComponent[TriggerEffect]()

// DespawnEffect removes itself when a stat-bearing entity touches it,
// without changing any stats.
type DespawnEffect struct {
	Consumed bool
}

var DespawnEffectComponent = NewComponent[DespawnEffect]()
