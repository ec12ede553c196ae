package combat

// Message keys sent to notifiers. Placeholders in brackets are filled from
// Notification.Params in order.
const (
	KeyAttacked          = "An enemy [unit] has attacked our [unit]"
	KeyDestroyed         = "An enemy [unit] has destroyed our [unit]"
	KeyCaptured          = "An enemy [unit] has captured our [unit]"
	KeyAttackerDestroyed = "Our [unit] was destroyed while attacking an enemy [unit]"
	KeyDefensesBroken    = "An enemy [unit] has broken the defenses of [city]"
	KeyCityCaptured      = "An enemy [unit] has captured [city]"
)

// Notification tells the outside world about a resolved combat.
type Notification struct {
	Key    string
	Params []string
	Result CombatResult
}

// Notifier receives a notification after every resolved combat.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

func notificationFor(res *CombatResult) Notification {
	n := Notification{
		Key:    KeyAttacked,
		Params: []string{res.AttackerName, res.DefenderName},
		Result: *res,
	}
	switch {
	case res.Defender.Kind == CityKind && res.DefenderOutcome == Captured:
		n.Key = KeyCityCaptured
	case res.DefenderOutcome == Capturable:
		n.Key = KeyDefensesBroken
	case res.DefenderOutcome == Captured:
		n.Key = KeyCaptured
	case res.DefenderOutcome == Destroyed:
		n.Key = KeyDestroyed
	case res.AttackerOutcome == Destroyed:
		n.Key = KeyAttackerDestroyed
	}
	return n
}
